package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
)

// NotificationFilter narrows the notification list.
type NotificationFilter struct {
	Status   string
	Category string
	Priority string
}

// ListNotifications returns notifications, newest first.
func (uc *AdminUseCase) ListNotifications(ctx context.Context, f NotificationFilter, p pagination.Params) (ListResult[model.Notification], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", f.Status)
	setIfPresent(filter, "category", f.Category)
	setIfPresent(filter, "priority", f.Priority)
	return listPage(ctx, uc.cols.Notifications, filter, desc("created_at"), p)
}

var notificationPriorities = map[string]bool{"low": true, "normal": true, "high": true, "urgent": true}

// CreateNotification stores a sent notification.
func (uc *AdminUseCase) CreateNotification(ctx context.Context, actor Actor, n model.Notification) (string, error) {
	if n.Priority == "" {
		n.Priority = "normal"
	}
	if !notificationPriorities[n.Priority] {
		return "", invalidf("unknown priority %q", n.Priority)
	}
	if n.RecipientType == "" {
		n.RecipientType = "all"
	}
	if n.Channels == nil {
		n.Channels = []string{"in_app"}
	}
	n.ID = uuid.NewString()
	n.Status = "sent"
	n.CreatedBy = actor.UserID
	n.CreatedAt = uc.now()
	n.ReadAt = nil
	if err := uc.cols.Notifications.Insert(ctx, &n); err != nil {
		return "", uc.storeError("usecase.create_notification", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "notification", n.ID, map[string]any{
		"title":          n.Title,
		"recipient_type": n.RecipientType,
	})
	return n.ID, nil
}

// MarkNotificationRead sets status read and stamps read_at.
func (uc *AdminUseCase) MarkNotificationRead(ctx context.Context, actor Actor, id string) error {
	matched, err := uc.cols.Notifications.Update(ctx, bson.M{"id": id}, bson.M{
		"status":  "read",
		"read_at": uc.now(),
	})
	if err != nil {
		return uc.storeError("usecase.mark_notification_read", actor, err)
	}
	if matched == 0 {
		return notFound("Notification")
	}
	return nil
}

// ListNotificationTemplates returns templates, optionally by category.
func (uc *AdminUseCase) ListNotificationTemplates(ctx context.Context, category string, p pagination.Params) (ListResult[model.NotificationTemplate], error) {
	filter := bson.M{}
	setIfPresent(filter, "category", category)
	return listPage(ctx, uc.cols.NotificationTemplates, filter, asc("name"), p)
}

// CreateNotificationTemplate stores a new active template.
func (uc *AdminUseCase) CreateNotificationTemplate(ctx context.Context, actor Actor, t model.NotificationTemplate) (string, error) {
	t.ID = uuid.NewString()
	t.IsActive = true
	t.CreatedAt = uc.now()
	if err := uc.cols.NotificationTemplates.Insert(ctx, &t); err != nil {
		return "", uc.storeError("usecase.create_notification_template", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "notification_template", t.ID, map[string]any{"name": t.Name})
	return t.ID, nil
}

// IntegrationFilter narrows the integration list.
type IntegrationFilter struct {
	Status string
	Type   string
}

// ListIntegrations returns configured integrations.
func (uc *AdminUseCase) ListIntegrations(ctx context.Context, f IntegrationFilter, p pagination.Params) (ListResult[model.SystemIntegration], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", f.Status)
	setIfPresent(filter, "type", f.Type)
	return listPage(ctx, uc.cols.Integrations, filter, asc("name"), p)
}

// CreateIntegration stores an active, never synced integration.
func (uc *AdminUseCase) CreateIntegration(ctx context.Context, actor Actor, in model.SystemIntegration) (string, error) {
	if in.Status == "" {
		in.Status = "active"
	}
	in.ID = uuid.NewString()
	in.SyncStatus = "pending"
	in.LastSync = nil
	in.CreatedAt = uc.now()
	if err := uc.cols.Integrations.Insert(ctx, &in); err != nil {
		return "", uc.storeError("usecase.create_integration", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "system_integration", in.ID, map[string]any{
		"name": in.Name,
		"type": in.Type,
	})
	return in.ID, nil
}

// SyncIntegration records a successful sync now.
func (uc *AdminUseCase) SyncIntegration(ctx context.Context, actor Actor, id string) error {
	matched, err := uc.cols.Integrations.Update(ctx, bson.M{"id": id}, bson.M{
		"last_sync":   uc.now(),
		"sync_status": "success",
	})
	if err != nil {
		return uc.storeError("usecase.sync_integration", actor, err)
	}
	if matched == 0 {
		return notFound("Integration")
	}
	uc.recordAction(ctx, actor, "sync", "system_integration", id, nil)
	return nil
}

// RetentionFilter narrows the retention policy list.
type RetentionFilter struct {
	Status       string
	DataCategory string
}

// ListRetentionPolicies returns retention policies by name.
func (uc *AdminUseCase) ListRetentionPolicies(ctx context.Context, f RetentionFilter, p pagination.Params) (ListResult[model.DataRetentionPolicy], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", f.Status)
	setIfPresent(filter, "data_category", f.DataCategory)
	return listPage(ctx, uc.cols.RetentionPolicies, filter, asc("policy_name"), p)
}

// CreateRetentionPolicy stores a policy. Status defaults to active.
func (uc *AdminUseCase) CreateRetentionPolicy(ctx context.Context, actor Actor, pol model.DataRetentionPolicy) (string, error) {
	if pol.ArchiveAfterDays > pol.RetentionPeriodDays {
		return "", invalidf("archive_after_days exceeds retention_period_days")
	}
	if pol.Status == "" {
		pol.Status = "active"
	}
	pol.ID = uuid.NewString()
	pol.CreatedAt = uc.now()
	if err := uc.cols.RetentionPolicies.Insert(ctx, &pol); err != nil {
		return "", uc.storeError("usecase.create_retention_policy", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "data_retention_policy", pol.ID, map[string]any{
		"policy_name":   pol.PolicyName,
		"data_category": pol.DataCategory,
	})
	return pol.ID, nil
}
