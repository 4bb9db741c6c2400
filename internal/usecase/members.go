package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

// MemberFilter narrows the member list.
type MemberFilter struct {
	Tier   string
	Search string
}

// ListMembers returns active members. Identity documents are masked.
func (uc *AdminUseCase) ListMembers(ctx context.Context, f MemberFilter, p pagination.Params) (ListResult[model.Member], error) {
	filter := bson.M{"is_active": true}
	setIfPresent(filter, "tier", f.Tier)
	if f.Search != "" {
		filter["$or"] = searchClause(f.Search, "first_name", "last_name", "email", "member_number")
	}
	res, err := listPage(ctx, uc.cols.Members, filter, asc("member_number"), p)
	if err != nil {
		return res, err
	}
	for i := range res.Items {
		if res.Items[i].NICPassport != "" {
			res.Items[i].NICPassport = MaskedValue
		}
	}
	return res, nil
}

// GetMember returns one member and records the access in the audit trail.
func (uc *AdminUseCase) GetMember(ctx context.Context, actor Actor, id string) (*model.Member, error) {
	member, err := uc.cols.Members.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Member")
	}
	if err != nil {
		return nil, uc.storeError("usecase.get_member", actor, err)
	}
	uc.recordAction(ctx, actor, "view", "member", id, map[string]any{"member_name": member.FullName()})
	return member, nil
}

// SessionView is a gaming session with the member's display name.
type SessionView struct {
	model.GamingSession `bson:",inline"`
	MemberName          string `json:"member_name,omitempty" bson:"member_name,omitempty"`
}

// ListGamingSessions returns sessions newest first, each enriched with the
// member name when the member still exists.
func (uc *AdminUseCase) ListGamingSessions(ctx context.Context, status string, p pagination.Params) (ListResult[SessionView], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", status)
	res, err := listPage(ctx, uc.cols.GamingSessions, filter, desc("session_start"), p)
	if err != nil {
		return ListResult[SessionView]{}, err
	}
	out := mapItems(res, func(s model.GamingSession) SessionView { return SessionView{GamingSession: s} })
	for i := range out.Items {
		m, err := uc.lookupMember(ctx, "usecase.list_gaming_sessions", out.Items[i].MemberID)
		if err != nil {
			return ListResult[SessionView]{}, err
		}
		if m != nil {
			out.Items[i].MemberName = m.FullName()
		}
	}
	return out, nil
}

// lookupMember resolves a referenced member, nil when it no longer exists.
func (uc *AdminUseCase) lookupMember(ctx context.Context, op, id string) (*model.Member, error) {
	if id == "" {
		return nil, nil
	}
	return lookupRef(ctx, uc, op, uc.cols.Members, bson.M{"id": id})
}

// ListGamingPackages returns active packages.
func (uc *AdminUseCase) ListGamingPackages(ctx context.Context, p pagination.Params) (ListResult[model.GamingPackage], error) {
	return listPage(ctx, uc.cols.GamingPackages, bson.M{"is_active": true}, asc("price"), p)
}

// CreateGamingPackage stores a new active package.
func (uc *AdminUseCase) CreateGamingPackage(ctx context.Context, actor Actor, pkg model.GamingPackage) (string, error) {
	for _, tier := range pkg.TierAccess {
		if !validTier(tier) {
			return "", invalidf("unknown tier %q", tier)
		}
	}
	pkg.ID = uuid.NewString()
	pkg.IsActive = true
	pkg.CreatedAt = uc.now()
	if err := uc.cols.GamingPackages.Insert(ctx, &pkg); err != nil {
		return "", uc.storeError("usecase.create_gaming_package", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "gaming_package", pkg.ID, map[string]any{
		"package_name": pkg.Name,
		"price":        pkg.Price,
	})
	return pkg.ID, nil
}

// ListRewards returns active rewards, optionally by category.
func (uc *AdminUseCase) ListRewards(ctx context.Context, category string, p pagination.Params) (ListResult[model.Reward], error) {
	filter := bson.M{"is_active": true}
	setIfPresent(filter, "category", category)
	return listPage(ctx, uc.cols.Rewards, filter, asc("points_required"), p)
}

func validTier(tier string) bool {
	for _, t := range model.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}
