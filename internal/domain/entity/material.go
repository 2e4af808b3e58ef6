package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa um item de estoque do almoxarifado.
// Quantidade e CentroCustoID são mutados exclusivamente pelo aplicador de
// movimentações; o catálogo edita apenas os demais campos.
type Material struct {
	ID            string
	Codigo        string
	Nome          string
	NomeBusca     string // nome sem acentos/caixa, mantido pelo caso de uso para busca
	Quantidade    int64  // invariante: >= 0
	ValorUnitario *decimal.Decimal
	Ativo         bool
	CentroCustoID *string
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}
