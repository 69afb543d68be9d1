package user

import "time"

// Departments are the plant departments an account may belong to.
var Departments = []string{"BIW", "Engine", "Paint", "TCF", "Quality", "Logistics"}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
