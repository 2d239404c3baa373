package details

import (
	"gorm.io/gorm"

	"basamu_backend/internals/configs"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	authService "basamu_backend/internals/features/users/auth/service"
	roleService "basamu_backend/internals/features/users/roles/service"
	"basamu_backend/internals/helpers/inflight"
	"basamu_backend/internals/helpers/upload"
	"basamu_backend/internals/middlewares"
)

// Deps is what main builds once and every route group shares.
type Deps struct {
	DB       *gorm.DB
	Config   configs.Config
	Provider *authService.Provider
	Accounts authRepo.Repository
	Gate     *roleService.Gate
	Workflow *upload.Workflow
	Metrics  *middlewares.Metrics
	Guard    *inflight.Guard
}
