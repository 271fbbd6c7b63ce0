package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Me returns the authenticated user's own record.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("user.Me: %w", err)
	}
	return u, nil
}

// Get returns a user. Anyone may read themselves; super administrators read
// everyone; domain administrators read users of their own domain.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	if actor.UserID == target.ID {
		return target, nil
	}

	if err := authz.Authorize(actor, authz.ActionListUsers, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	if scope := authz.ScopeDomain(actor); scope != nil {
		if target.DomainID == nil || *target.DomainID != *scope {
			return nil, domain.Deny(domain.ReasonDomainMismatch)
		}
	}
	return target, nil
}

// List returns a page of users and the total match count. Domain
// administrators only see their own domain regardless of the filter.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.User, int, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, 0, err
	}
	if err := authz.Authorize(actor, authz.ActionListUsers, authz.Resource{}).Err(); err != nil {
		return nil, 0, err
	}

	filter := domain.UserFilter{
		DomainID: input.DomainID,
		Role:     input.Role,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if scope := authz.ScopeDomain(actor); scope != nil {
		filter.DomainID = scope
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("user.List: %w", err)
	}
	return users, total, nil
}

// Create registers a new account. Super administrators only.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageUsers, authz.Resource{}).Err(); err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		DomainID:     input.DomainID,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionCreate, created.ID)
	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// Update changes an account. Super administrators may change any field of
// any account; everyone else may change only their own username, email and
// password.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.User, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}

	isSelf := actor.UserID == input.ID
	manage := authz.Authorize(actor, authz.ActionManageUsers, authz.Resource{})
	if !manage.Allowed && (!isSelf || input.touchesPrivileges()) {
		return nil, manage.Err()
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	params := domain.UserUpdateParams{Username: input.Username, Email: input.Email}
	if input.touchesPrivileges() {
		if err := privilegeParams(&params, target, input, isSelf); err != nil {
			return nil, err
		}
	}

	var hash string
	if input.Password != nil {
		if hash, err = s.hasher.Hash(*input.Password); err != nil {
			return nil, fmt.Errorf("user.Update hash: %w", err)
		}
	}

	updated := target
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if hasFieldChanges(params) {
			u, err := s.users.Update(txCtx, input.ID, params)
			if err != nil {
				return err
			}
			updated = u
		}
		if hash != "" {
			return s.users.UpdatePassword(txCtx, input.ID, hash)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionUpdate, input.ID)
	return updated, nil
}

// privilegeParams resolves the final role/domain pair so that scoped roles
// always carry a domain and unscoped roles never do.
func privilegeParams(p *domain.UserUpdateParams, target *domain.User, input UpdateInput, isSelf bool) error {
	role := target.Role
	if input.Role != nil {
		role = *input.Role
	}
	if isSelf && role != target.Role {
		return domain.NewValidationError("role", "cannot change your own role")
	}

	domainID := target.DomainID
	if input.DomainID != nil {
		domainID = input.DomainID
	}

	p.Role = input.Role
	if role.RequiresDomain() {
		if domainID == nil || *domainID == uuid.Nil {
			return domain.NewValidationError("domain_id", "required for "+role.String())
		}
		p.DomainID = domainID
		return nil
	}
	p.ClearDomain = true
	return nil
}

func hasFieldChanges(p domain.UserUpdateParams) bool {
	return p.Username != nil || p.Email != nil || p.Role != nil || p.DomainID != nil || p.ClearDomain
}

// Delete removes an account. Super administrators only, never themselves.
// Authors of existing articles cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionManageUsers, authz.Resource{}).Err(); err != nil {
		return err
	}
	if actor.UserID == id {
		return domain.NewValidationError("id", "cannot delete your own account")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.users.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.record(ctx, actor, domain.AuditActionDelete, id)
	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}
