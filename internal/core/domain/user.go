package domain

import "time"

// User represents a registered user of the application.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
