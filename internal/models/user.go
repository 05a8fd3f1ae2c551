package models

// Admin is the single dashboard operator configured through the environment.
type Admin struct {
	Email string `json:"email"`
	Role  string `json:"role"` // always "admin"
}

const RoleAdmin = "admin"
