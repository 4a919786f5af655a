package models

// Constantes pour les rôles disponibles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetDefaultRoles retourne les rôles par défaut pour un nouvel utilisateur
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// IsValidRole indique si le rôle fait partie des rôles connus
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
