package dto

import "github.com/shopspring/decimal"

// CriarMaterialRequest corpo para POST /api/materiais.
type CriarMaterialRequest struct {
	Codigo        string           `json:"codigo"`
	Nome          string           `json:"nome"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario,omitempty"`
	CentroCustoID *string          `json:"centro_custo_id,omitempty"`
}

// AtualizarMaterialRequest corpo para PUT /api/materiais/:id.
// Quantidade não aparece aqui: só o aplicador de movimentações a altera.
type AtualizarMaterialRequest struct {
	Nome          string           `json:"nome"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario,omitempty"`
	Ativo         *bool            `json:"ativo,omitempty"`
}

// MaterialResponse representação de material em respostas.
type MaterialResponse struct {
	ID            string           `json:"id"`
	Codigo        string           `json:"codigo"`
	Nome          string           `json:"nome"`
	Quantidade    int64            `json:"quantidade"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario,omitempty"`
	Ativo         bool             `json:"ativo"`
	CentroCustoID *string          `json:"centro_custo_id,omitempty"`
}
