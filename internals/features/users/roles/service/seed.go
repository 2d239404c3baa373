package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"basamu_backend/internals/constants"
	roleRepo "basamu_backend/internals/features/users/roles/repository"
	userModel "basamu_backend/internals/features/users/user/model"
)

type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
}

// SeedAdmins grants the admin role to each registered account in emails.
// Unknown emails are skipped with a warning; they can be seeded after sign-up.
func SeedAdmins(ctx context.Context, users UserFinder, roles roleRepo.Repository, emails []string) int {
	granted := 0
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		u, err := users.FindUserByEmail(ctx, email)
		if err != nil {
			log.Warn().Err(err).Str("email", email).Msg("admin seed: user not found")
			continue
		}
		if err := roles.Grant(ctx, u.ID, constants.RoleAdmin); err != nil {
			log.Error().Err(err).Str("email", email).Msg("admin seed: grant failed")
			continue
		}
		granted++
	}
	if granted > 0 {
		log.Info().Int("granted", granted).Msg("admin roles seeded")
	}
	return granted
}
