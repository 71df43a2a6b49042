package entity

// Role tags stored on accounts. RoleUser is implied for everyone.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)
