package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "basamu_backend/internals/features/users/auth/route"
	profileController "basamu_backend/internals/features/users/profiles/controller"
	profileRepo "basamu_backend/internals/features/users/profiles/repository"
	profileRoute "basamu_backend/internals/features/users/profiles/route"
)

// UserRoutes mounts everything a signed-in user can reach under /api/u.
func UserRoutes(user fiber.Router, d Deps) {
	authRoute.UserAuthRoutes(user, newAuthController(d))

	profiles := profileController.NewProfileController(profileRepo.New(d.DB), d.Accounts, d.Workflow)
	profileRoute.ProfileRoutes(user, profiles, d.Guard)
}
