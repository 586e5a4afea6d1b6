package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office operator (admin or agent).
type User struct {
	Id        uuid.UUID
	Name      string
	Email     string
	Password  string // bcrypt hash
	Role      string // SUPERADMIN | ADMIN | MASTER_AGENT | AGENT
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
