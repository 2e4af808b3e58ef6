package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin       = "admin"
	RoleAlmoxarife  = "almoxarife"
	RoleSolicitante = "solicitante"
)

// Usuario é uma conta de acesso à API.
type Usuario struct {
	ID        string
	Email     string
	Nome      string
	SenhaHash string
	Role      string
	CriadoEm  time.Time
}
