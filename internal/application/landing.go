package application

import (
	"fmt"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
)

const (
	AdminLandingPath   = "/admin"
	ProfileLandingPath = "/profile"
)

// LandingPath picks where an authenticated account goes after reaching the login page.
func LandingPath(roles []string) (string, error) {
	if hasRole(roles, entity.RoleAdmin) {
		return AdminLandingPath, nil
	}
	if hasRole(roles, entity.RoleUser) {
		return ProfileLandingPath, nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnattendedRoles, roles)
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
