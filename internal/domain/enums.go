package domain

// UserRole represents the authorization level of a user.
// Roles are strictly ordered: user < contributor < domain_admin < super_admin.
type UserRole string

const (
	UserRoleUser        UserRole = "user"
	UserRoleContributor UserRole = "contributor"
	UserRoleDomainAdmin UserRole = "domain_admin"
	UserRoleSuperAdmin  UserRole = "super_admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	return r.rank() > 0
}

func (r UserRole) rank() int {
	switch r {
	case UserRoleUser:
		return 1
	case UserRoleContributor:
		return 2
	case UserRoleDomainAdmin:
		return 3
	case UserRoleSuperAdmin:
		return 4
	}
	return 0
}

// AtLeast reports whether r is ranked at or above min. Unknown roles rank below everything.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.IsValid() && r.rank() >= min.rank()
}

// RequiresDomain reports whether the role is scoped to a single domain.
func (r UserRole) RequiresDomain() bool {
	return r == UserRoleContributor || r == UserRoleDomainAdmin
}

// IsSuperAdmin reports whether the role has unrestricted privileges.
func (r UserRole) IsSuperAdmin() bool {
	return r == UserRoleSuperAdmin
}

// AuditAction represents the kind of event recorded in the audit log.
type AuditAction string

const (
	AuditActionLogin       AuditAction = "login"
	AuditActionLoginFailed AuditAction = "login_failed"
	AuditActionLogout      AuditAction = "logout"
	AuditActionValidate    AuditAction = "validate"
	AuditActionArchive     AuditAction = "archive"
	AuditActionUnarchive   AuditAction = "unarchive"
	AuditActionCreate      AuditAction = "create"
	AuditActionUpdate      AuditAction = "update"
	AuditActionDelete      AuditAction = "delete"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionLogin, AuditActionLoginFailed, AuditActionLogout,
		AuditActionValidate, AuditActionArchive, AuditActionUnarchive,
		AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// EntityType identifies the kind of resource an audit entry refers to.
type EntityType string

const (
	EntityTypeArticle EntityType = "article"
	EntityTypeDomain  EntityType = "domain"
	EntityTypeUser    EntityType = "user"
	EntityTypeSession EntityType = "session"
)

func (e EntityType) String() string { return string(e) }

// LikeAction is the outcome of a like toggle.
type LikeAction string

const (
	LikeActionLiked   LikeAction = "liked"
	LikeActionUnliked LikeAction = "unliked"
)

func (a LikeAction) String() string { return string(a) }
