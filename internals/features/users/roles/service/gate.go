package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"basamu_backend/internals/constants"
	roleRepo "basamu_backend/internals/features/users/roles/repository"
)

// ErrRoleLookup means the role query itself failed; callers must treat the user as
// not an admin.
var ErrRoleLookup = errors.New("role lookup failed")

const (
	OutcomeAdmin     = "admin"
	OutcomeDenied    = "denied"
	OutcomeError     = "error"
	OutcomeAnonymous = "anonymous"
)

// Gate answers "is this user an admin" straight from user_roles on every call.
type Gate struct {
	repo    roleRepo.Repository
	observe func(outcome string)
}

func NewGate(repo roleRepo.Repository, observe func(outcome string)) *Gate {
	return &Gate{repo: repo, observe: observe}
}

func (g *Gate) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		g.report(OutcomeAnonymous)
		return false, nil
	}
	ok, err := g.repo.HasRole(ctx, userID, constants.RoleAdmin)
	if err != nil {
		g.report(OutcomeError)
		return false, fmt.Errorf("%w: %v", ErrRoleLookup, err)
	}
	if !ok {
		g.report(OutcomeDenied)
		return false, nil
	}
	g.report(OutcomeAdmin)
	return true, nil
}

func (g *Gate) report(outcome string) {
	if g.observe != nil {
		g.observe(outcome)
	}
}
