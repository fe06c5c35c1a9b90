package service

import (
	"context"

	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/apperror"
)

// RoleSet is a user's set of role names.
type RoleSet map[string]struct{}

func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasAny reports whether the set holds at least one of the given roles. It
// is the single authorization primitive; membership checks never happen
// anywhere else.
func (s RoleSet) HasAny(names ...string) bool {
	for _, name := range names {
		if s.Has(name) {
			return true
		}
	}
	return false
}

func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// RoleResolver resolves a user's role set. Results are never cached; a role
// change is visible on the next call.
type RoleResolver interface {
	RolesOf(ctx context.Context, userID uint) (RoleSet, error)
}

type roleResolver struct {
	users repository.UserRepository
}

func NewRoleResolver(users repository.UserRepository) RoleResolver {
	return &roleResolver{users: users}
}

func (r *roleResolver) RolesOf(ctx context.Context, userID uint) (RoleSet, error) {
	names, err := r.users.RoleNamesOf(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return NewRoleSet(names...), nil
}
