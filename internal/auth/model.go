package auth

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
