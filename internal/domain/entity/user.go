package entity

import "time"

// Roles de usuario.
const (
	RoleManager         = "MANAGER"
	RoleWarehouseKeeper = "WAREHOUSE_KEEPER"
)

// User representa un usuario del sistema (gestor o bodeguero).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Role         string // MANAGER | WAREHOUSE_KEEPER
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
