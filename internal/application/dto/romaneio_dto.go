package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CriarRomaneioItemRequest linha de material no corpo de criação de romaneio.
type CriarRomaneioItemRequest struct {
	MaterialID    string           `json:"material_id"`
	Quantidade    int64            `json:"quantidade"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario,omitempty"`
	NumeroSerie   *string          `json:"numero_serie,omitempty"`
	Observacoes   string           `json:"observacoes,omitempty"`
}

// CriarRomaneioRequest corpo para POST /api/romaneios.
// FuncionarioID e ResponsavelNome são mutuamente exclusivos.
type CriarRomaneioRequest struct {
	Tipo                 string                     `json:"tipo"` // RETIRADA | DEVOLUCAO | TRANSFERENCIA
	RomaneioOrigemID     *string                    `json:"romaneio_origem_id,omitempty"`
	CentroCustoOrigemID  string                     `json:"centro_custo_origem_id"`
	CentroCustoDestinoID string                     `json:"centro_custo_destino_id"`
	FuncionarioID        *string                    `json:"funcionario_id,omitempty"`
	ResponsavelNome      *string                    `json:"responsavel_nome,omitempty"`
	Observacoes          string                     `json:"observacoes,omitempty"`
	Itens                []CriarRomaneioItemRequest `json:"itens"`
}

// RomaneioItemResponse linha de material em respostas.
type RomaneioItemResponse struct {
	ID                 string           `json:"id"`
	MaterialID         string           `json:"material_id"`
	Quantidade         int64            `json:"quantidade"`
	QuantidadeOriginal *int64           `json:"quantidade_original,omitempty"`
	ValorUnitario      *decimal.Decimal `json:"valor_unitario,omitempty"`
	NumeroSerie        *string          `json:"numero_serie,omitempty"`
	Observacoes        string           `json:"observacoes,omitempty"`
}

// RomaneioResponse representação de romaneio em respostas.
type RomaneioResponse struct {
	ID                   string                 `json:"id"`
	Numero               int64                  `json:"numero"`
	Tipo                 string                 `json:"tipo"`
	Status               string                 `json:"status"`
	RomaneioOrigemID     *string                `json:"romaneio_origem_id,omitempty"`
	CentroCustoOrigemID  string                 `json:"centro_custo_origem_id"`
	CentroCustoDestinoID string                 `json:"centro_custo_destino_id"`
	FuncionarioID        *string                `json:"funcionario_id,omitempty"`
	ResponsavelNome      *string                `json:"responsavel_nome,omitempty"`
	Observacoes          string                 `json:"observacoes,omitempty"`
	Data                 time.Time              `json:"data"`
	CriadoPor            string                 `json:"criado_por"`
	AprovadoEm           *time.Time             `json:"aprovado_em,omitempty"`
	AprovadoPor          *string                `json:"aprovado_por,omitempty"`
	Itens                []RomaneioItemResponse `json:"itens"`
}
