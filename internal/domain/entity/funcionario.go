package entity

import "time"

// Funcionario representa um colaborador que pode responder por romaneios.
type Funcionario struct {
	ID        string
	Matricula string
	Nome      string
	Cargo     string
	Ativo     bool
	CriadoEm  time.Time
}
