package domain

import "time"

// Role represents a user's role in the incident workflow.
type Role string

// Roles in ascending order of privilege.
const (
	RoleEngineer  Role = "engineer"
	RoleCommander Role = "incident_commander"
	RoleManager   Role = "manager"
)

var roleRank = map[Role]int{
	RoleEngineer:  1,
	RoleCommander: 2,
	RoleManager:   3,
}

// HasPermission reports whether the role satisfies the required minimum role.
func (r Role) HasPermission(minRole Role) bool {
	return roleRank[r] >= roleRank[minRole]
}

// User represents an authenticated operator of the console.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken represents a stored refresh token.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
