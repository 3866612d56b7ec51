package services

import "schoolportal-backend-go/internal/models"

// Role checks live here and nowhere else, so the action-to-role mapping
// stays auditable in one place.

func CanModerate(role string) bool {
	return role == models.RoleModerator || role == models.RoleAdmin
}

func CanAdministrate(role string) bool {
	return role == models.RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin:
		return true
	}
	return false
}
