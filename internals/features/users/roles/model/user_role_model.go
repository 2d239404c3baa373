// file: internals/features/users/roles/model/user_role_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role" json:"user_id"`
	Role      string    `gorm:"column:role;size:32;not null;uniqueIndex:uq_user_roles_user_role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }
