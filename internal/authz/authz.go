// Package authz is the single decision point for every permission check.
// Services never compare roles themselves; they ask Authorize.
package authz

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionCreateArticle     Action = "create_article"
	ActionUpdateArticle     Action = "update_article"
	ActionDeleteArticle     Action = "delete_article"
	ActionHardDeleteArticle Action = "hard_delete_article"
	ActionValidateArticle   Action = "validate_article"
	ActionArchiveArticle    Action = "archive_article"
	ActionUnarchiveArticle  Action = "unarchive_article"
	ActionGrantEditAccess   Action = "grant_edit_access"
	ActionReadArticle       Action = "read_article"
	ActionListOwnArticles   Action = "list_own_articles"
	ActionListModeration    Action = "list_moderation"
	ActionManageDomains     Action = "manage_domains"
	ActionManageUsers       Action = "manage_users"
	ActionListUsers         Action = "list_users"
	ActionReadAudit         Action = "read_audit"
)

func (a Action) String() string { return string(a) }

// Resource is the object an action applies to. Article is required for
// article-scoped actions; it is ignored otherwise.
type Resource struct {
	Article *domain.Article
}

// OnArticle builds a Resource for an article-scoped action.
func OnArticle(a *domain.Article) Resource {
	return Resource{Article: a}
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  domain.DenialReason
}

// Err returns nil for an allowed decision and a *domain.DenialError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.Deny(d.Reason)
}

var allow = Decision{Allowed: true}

func deny(reason domain.DenialReason) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether actor may perform action on res. A nil actor
// is anonymous and may only read public articles.
func Authorize(actor *domain.Actor, action Action, res Resource) Decision {
	if action == ActionReadArticle {
		return canRead(actor, res.Article)
	}
	if actor == nil || !actor.Role.IsValid() {
		return deny(domain.ReasonNotAuthenticated)
	}

	switch action {
	case ActionCreateArticle:
		return canCreate(actor)
	case ActionUpdateArticle, ActionDeleteArticle, ActionArchiveArticle,
		ActionUnarchiveArticle, ActionGrantEditAccess:
		return canModify(actor, res.Article)
	case ActionValidateArticle:
		return canValidate(actor, res.Article)
	case ActionListOwnArticles:
		if !actor.Role.AtLeast(domain.UserRoleContributor) {
			return deny(domain.ReasonForbidden)
		}
		return requireDomain(actor)
	case ActionListModeration, ActionListUsers:
		if !actor.Role.AtLeast(domain.UserRoleDomainAdmin) {
			return deny(domain.ReasonForbidden)
		}
		return requireDomain(actor)
	case ActionHardDeleteArticle, ActionManageDomains, ActionManageUsers, ActionReadAudit:
		if actor.Role.IsSuperAdmin() {
			return allow
		}
		return deny(domain.ReasonForbidden)
	}

	return deny(domain.ReasonForbidden)
}

// requireDomain fails closed for domain-scoped roles without a domain.
func requireDomain(actor *domain.Actor) Decision {
	if actor.Role.RequiresDomain() && !actor.HasDomain() {
		return deny(domain.ReasonNoDomainAssigned)
	}
	return allow
}

func canCreate(actor *domain.Actor) Decision {
	if !actor.Role.AtLeast(domain.UserRoleContributor) {
		return deny(domain.ReasonForbidden)
	}
	return requireDomain(actor)
}

func canModify(actor *domain.Actor, a *domain.Article) Decision {
	if a == nil {
		return deny(domain.ReasonForbidden)
	}
	if actor.Role.IsSuperAdmin() {
		return allow
	}
	if !actor.Role.AtLeast(domain.UserRoleContributor) {
		return deny(domain.ReasonForbidden)
	}
	if d := requireDomain(actor); !d.Allowed {
		return d
	}
	if actor.Role == domain.UserRoleDomainAdmin && actor.InDomain(a.DomainID) {
		return allow
	}
	if a.IsAuthor(actor.UserID) || a.IsEditor(actor.UserID) {
		return allow
	}
	if actor.Role == domain.UserRoleDomainAdmin {
		return deny(domain.ReasonDomainMismatch)
	}
	return deny(domain.ReasonForbidden)
}

func canValidate(actor *domain.Actor, a *domain.Article) Decision {
	if a == nil {
		return deny(domain.ReasonForbidden)
	}
	if actor.Role.IsSuperAdmin() {
		return allow
	}
	if actor.Role != domain.UserRoleDomainAdmin {
		return deny(domain.ReasonForbidden)
	}
	if !actor.HasDomain() {
		return deny(domain.ReasonNoDomainAssigned)
	}
	if a.IsAuthor(actor.UserID) {
		return deny(domain.ReasonSelfValidationDenied)
	}
	if !actor.InDomain(a.DomainID) {
		return deny(domain.ReasonDomainMismatch)
	}
	return allow
}

// canRead reports visibility of an article. Denials here are turned into
// NotFound by callers so that existence does not leak.
func canRead(actor *domain.Actor, a *domain.Article) Decision {
	if a == nil {
		return deny(domain.ReasonForbidden)
	}
	if a.IsPublic() {
		return allow
	}
	if actor == nil || !actor.Role.IsValid() {
		return deny(domain.ReasonNotAuthenticated)
	}
	if actor.Role.IsSuperAdmin() {
		return allow
	}
	if actor.Role == domain.UserRoleDomainAdmin && actor.InDomain(a.DomainID) {
		return allow
	}
	if actor.Role.AtLeast(domain.UserRoleContributor) && (a.IsAuthor(actor.UserID) || a.IsEditor(actor.UserID)) {
		return allow
	}
	return deny(domain.ReasonForbidden)
}

// ScopeDomain returns the domain an actor's moderation listings are limited
// to. It returns nil for super_admin, meaning every domain.
func ScopeDomain(actor *domain.Actor) *uuid.UUID {
	if actor == nil || actor.Role.IsSuperAdmin() {
		return nil
	}
	return actor.DomainID
}
