package entity

import "time"

// Roles de usuario. La autorización fina vive fuera del motor; aquí solo se
// usa para decisiones sí/no en el middleware HTTP.
const (
	RolAdministrador = "ADMINISTRADOR"
	RolJefeCampo     = "JEFE_CAMPO"
	RolOperario      = "OPERARIO"
)

// User es un usuario del sistema (operador o responsable de labores).
type User struct {
	ID           string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string
	Activo       bool
	FechaCreacion time.Time
}
