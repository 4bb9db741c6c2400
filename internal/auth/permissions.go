package auth

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// ForbiddenError is returned when the caller's role is not allowed.
const ForbiddenError = "Insufficient permissions"

// Role is an administrator role carried in the access token.
type Role string

const (
	RoleSuperAdmin   Role = "SuperAdmin"
	RoleGeneralAdmin Role = "GeneralAdmin"
	RoleManager      Role = "Manager"
	RoleSupervisor   Role = "Supervisor"
	RoleStaff        Role = "Staff"
)

// Operation names a guarded action.
type Operation string

const (
	OpCreateGamingPackage     Operation = "gaming_package.create"
	OpCreateCampaign          Operation = "marketing_campaign.create"
	OpCreateVIPExperience     Operation = "vip_experience.create"
	OpCreateGroupBooking      Operation = "group_booking.create"
	OpCreateTrainingCourse    Operation = "training_course.create"
	OpCreatePerformanceReview Operation = "performance_review.create"
	OpGenerateAnalytics       Operation = "analytics.generate"
	OpCreateNotification      Operation = "notification.create"
	OpCreateTemplate          Operation = "notification_template.create"
	OpViewCompliance          Operation = "compliance.view"
	OpGenerateCompliance      Operation = "compliance.generate"
	OpViewAuditTrail          Operation = "audit.view"
	OpManageIntegrations      Operation = "integration.manage"
	OpManageRetentionPolicies Operation = "retention_policy.manage"
)

var (
	managers = []Role{RoleSuperAdmin, RoleGeneralAdmin, RoleManager}
	admins   = []Role{RoleSuperAdmin, RoleGeneralAdmin}
)

// permissions is the single source of truth for role gates.
var permissions = map[Operation][]Role{
	OpCreateGamingPackage:     managers,
	OpCreateCampaign:          managers,
	OpCreateVIPExperience:     managers,
	OpCreateGroupBooking:      managers,
	OpCreateTrainingCourse:    managers,
	OpCreatePerformanceReview: managers,
	OpGenerateAnalytics:       managers,
	OpCreateNotification:      managers,
	OpCreateTemplate:          managers,
	OpViewCompliance:          admins,
	OpGenerateCompliance:      admins,
	OpViewAuditTrail:          admins,
	OpManageIntegrations:      admins,
	OpManageRetentionPolicies: admins,
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role Role, op Operation) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// PermissionsFor lists the guarded operations role may perform, sorted.
func PermissionsFor(role Role) []Operation {
	ops := []Operation{}
	for op := range permissions {
		if Allowed(role, op) {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Require aborts with 403 unless the authenticated caller may perform op.
// It must run after JWTMiddleware.
func Require(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c.Request.Context())
		if !ok || !Allowed(id.Role, op) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ForbiddenError})
			return
		}
		c.Next()
	}
}
