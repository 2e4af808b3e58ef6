package entity

import "time"

// CentroCusto é a unidade organizacional à qual materiais ficam alocados.
type CentroCusto struct {
	ID       string
	Codigo   string
	Nome     string
	Ativo    bool
	CriadoEm time.Time
}
