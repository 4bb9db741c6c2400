package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

// DepartmentCount is the head count of one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// TrainingStats summarises the training programme.
type TrainingStats struct {
	TotalCourses       int64   `json:"total_courses"`
	TotalEnrollments   int64   `json:"total_enrollments"`
	CompletedThisMonth int64   `json:"completed_this_month"`
	CompletionRate     float64 `json:"completion_rate"`
}

// StaffDashboard summarises head count, training and reviews.
type StaffDashboard struct {
	TotalStaff             int64             `json:"total_staff"`
	ActiveStaff            int64             `json:"active_staff"`
	StaffByDepartment      []DepartmentCount `json:"staff_by_department"`
	TrainingCompletionRate float64           `json:"training_completion_rate"`
	AvgPerformanceScore    float64           `json:"avg_performance_score"`
	RecentEnrollments      int64             `json:"recent_enrollments"`
	ReviewsDue             int64             `json:"reviews_due"`
	TrainingStats          TrainingStats     `json:"training_stats"`
}

// StaffDashboard computes the staff and training summary.
func (uc *AdminUseCase) StaffDashboard(ctx context.Context) (*StaffDashboard, error) {
	return cachedDashboard(ctx, uc, "staff", uc.computeStaffDashboard)
}

func (uc *AdminUseCase) computeStaffDashboard(ctx context.Context) (*StaffDashboard, error) {
	w := WindowsAt(uc.now())
	out := &StaffDashboard{}

	staff, err := uc.cols.Staff.Find(ctx, bson.M{}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	out.TotalStaff = int64(len(staff))
	byDept := map[string]int64{}
	scores := make([]*float64, 0, len(staff))
	for _, s := range staff {
		if s.EmploymentStatus != "active" {
			continue
		}
		out.ActiveStaff++
		byDept[s.Department]++
		scores = append(scores, s.PerformanceScore)
	}
	out.StaffByDepartment = make([]DepartmentCount, 0, len(byDept))
	for dept, n := range byDept {
		out.StaffByDepartment = append(out.StaffByDepartment, DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(out.StaffByDepartment, func(i, j int) bool {
		return out.StaffByDepartment[i].Department < out.StaffByDepartment[j].Department
	})
	out.AvgPerformanceScore = round2(average(scores))

	enrollments, err := uc.cols.TrainingRecords.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	completed, err := uc.cols.TrainingRecords.Count(ctx, bson.M{"status": model.TrainingCompleted})
	if err != nil {
		return nil, err
	}
	out.TrainingCompletionRate = round2(percentage(completed, enrollments))

	if out.RecentEnrollments, err = uc.cols.TrainingRecords.Count(ctx, bson.M{
		"enrollment_date": bson.M{"$gte": w.Now.AddDate(0, 0, -7)},
	}); err != nil {
		return nil, err
	}
	if out.ReviewsDue, err = uc.cols.Staff.Count(ctx, bson.M{
		"employment_status": "active",
		"next_review_due":   bson.M{"$lte": w.Now.AddDate(0, 0, 30)},
	}); err != nil {
		return nil, err
	}

	courses, err := uc.cols.TrainingCourses.Count(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	completedThisMonth, err := uc.cols.TrainingRecords.Count(ctx, bson.M{
		"status":          model.TrainingCompleted,
		"completion_date": bson.M{"$gte": w.Month},
	})
	if err != nil {
		return nil, err
	}
	out.TrainingStats = TrainingStats{
		TotalCourses:       courses,
		TotalEnrollments:   enrollments,
		CompletedThisMonth: completedThisMonth,
		CompletionRate:     out.TrainingCompletionRate,
	}
	return out, nil
}

// StaffFilter narrows the staff list.
type StaffFilter struct {
	Department string
	Search     string
}

// ListStaff returns staff members ordered by employee id.
func (uc *AdminUseCase) ListStaff(ctx context.Context, f StaffFilter, p pagination.Params) (ListResult[model.StaffMember], error) {
	filter := bson.M{}
	setIfPresent(filter, "department", f.Department)
	if f.Search != "" {
		filter["$or"] = searchClause(f.Search, "first_name", "last_name", "email", "employee_id")
	}
	return listPage(ctx, uc.cols.Staff, filter, asc("employee_id"), p)
}

// ListTrainingCourses returns active courses, optionally by category.
func (uc *AdminUseCase) ListTrainingCourses(ctx context.Context, category string, p pagination.Params) (ListResult[model.TrainingCourse], error) {
	filter := bson.M{"is_active": true}
	setIfPresent(filter, "category", category)
	return listPage(ctx, uc.cols.TrainingCourses, filter, asc("title"), p)
}

// CreateTrainingCourse stores a new active course.
func (uc *AdminUseCase) CreateTrainingCourse(ctx context.Context, actor Actor, c model.TrainingCourse) (string, error) {
	if c.DurationHours < 0 {
		return "", invalidf("duration_hours must not be negative")
	}
	c.ID = uuid.NewString()
	c.IsActive = true
	c.CreatedAt = uc.now()
	if err := uc.cols.TrainingCourses.Insert(ctx, &c); err != nil {
		return "", uc.storeError("usecase.create_training_course", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "training_course", c.ID, map[string]any{
		"title":    c.Title,
		"category": c.Category,
	})
	return c.ID, nil
}

// TrainingRecordFilter narrows the training record list.
type TrainingRecordFilter struct {
	StaffID  string
	CourseID string
	Status   string
}

// TrainingRecordView is a training record with staff and course names.
type TrainingRecordView struct {
	model.TrainingRecord `bson:",inline"`
	StaffName            string `json:"staff_name,omitempty" bson:"staff_name,omitempty"`
	CourseTitle          string `json:"course_title,omitempty" bson:"course_title,omitempty"`
}

// ListTrainingRecords returns enrolments, newest first, enriched per record.
func (uc *AdminUseCase) ListTrainingRecords(ctx context.Context, f TrainingRecordFilter, p pagination.Params) (ListResult[TrainingRecordView], error) {
	filter := bson.M{}
	setIfPresent(filter, "staff_id", f.StaffID)
	setIfPresent(filter, "course_id", f.CourseID)
	setIfPresent(filter, "status", f.Status)
	res, err := listPage(ctx, uc.cols.TrainingRecords, filter, desc("enrollment_date"), p)
	if err != nil {
		return ListResult[TrainingRecordView]{}, err
	}
	out := mapItems(res, func(r model.TrainingRecord) TrainingRecordView { return TrainingRecordView{TrainingRecord: r} })
	const op = "usecase.list_training_records"
	for i := range out.Items {
		s, err := lookupRef(ctx, uc, op, uc.cols.Staff, bson.M{"id": out.Items[i].StaffID})
		if err != nil {
			return ListResult[TrainingRecordView]{}, err
		}
		if s != nil {
			out.Items[i].StaffName = s.FullName()
		}
		c, err := lookupRef(ctx, uc, op, uc.cols.TrainingCourses, bson.M{"id": out.Items[i].CourseID})
		if err != nil {
			return ListResult[TrainingRecordView]{}, err
		}
		if c != nil {
			out.Items[i].CourseTitle = c.Title
		}
	}
	return out, nil
}

// CreatePerformanceReview stores a review and copies its score and next
// review date onto the staff record. The two writes are independent.
func (uc *AdminUseCase) CreatePerformanceReview(ctx context.Context, actor Actor, r model.PerformanceReview) (string, error) {
	if _, err := uc.cols.Staff.FindByID(ctx, r.StaffID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", notFound("Staff member")
		}
		return "", uc.storeError("usecase.create_performance_review", actor, err)
	}
	now := uc.now()
	if r.ReviewerID == "" {
		r.ReviewerID = actor.UserID
	}
	if r.NextReviewDate.IsZero() {
		r.NextReviewDate = now.AddDate(0, 6, 0)
	}
	r.ID = uuid.NewString()
	r.CreatedAt = now
	if err := uc.cols.PerformanceReviews.Insert(ctx, &r); err != nil {
		return "", uc.storeError("usecase.create_performance_review", actor, err)
	}
	if _, err := uc.cols.Staff.Update(ctx, bson.M{"id": r.StaffID}, bson.M{
		"performance_score": r.OverallScore,
		"last_review_date":  now,
		"next_review_due":   r.NextReviewDate,
	}); err != nil {
		return "", uc.storeError("usecase.update_staff_review", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "performance_review", r.ID, map[string]any{
		"staff_id":      r.StaffID,
		"overall_score": r.OverallScore,
	})
	return r.ID, nil
}
