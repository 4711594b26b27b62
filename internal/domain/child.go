package domain

import (
	"time"

	"github.com/google/uuid"
)

// Child is a declared child of a user.
type Child struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	DateOfBirth time.Time
	Gender      Gender
	CreatedAt   time.Time
}
