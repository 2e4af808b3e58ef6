package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de romaneio.
const (
	TipoRetirada      = "RETIRADA"      // saída de estoque
	TipoDevolucao     = "DEVOLUCAO"     // retorno referenciando uma retirada
	TipoTransferencia = "TRANSFERENCIA" // realocação de centro de custo
)

// Status de romaneio. Transições permitidas: PENDENTE→APROVADO e PENDENTE→CANCELADO.
const (
	StatusPendente  = "PENDENTE"
	StatusAprovado  = "APROVADO"
	StatusCancelado = "CANCELADO"
)

// Romaneio é um documento de movimentação de materiais.
// FuncionarioID e ResponsavelNome são mutuamente exclusivos: ou o responsável é
// um funcionário cadastrado, ou é identificado por nome livre.
type Romaneio struct {
	ID                   string
	Numero               int64 // número sequencial legível, atribuído na criação
	Tipo                 string
	Status               string
	RomaneioOrigemID     *string // apenas em devoluções: a retirada de origem
	CentroCustoOrigemID  string
	CentroCustoDestinoID string
	FuncionarioID        *string
	ResponsavelNome      *string
	Observacoes          string
	Data                 time.Time
	CriadoEm             time.Time
	CriadoPor            string
	AprovadoEm           *time.Time
	AprovadoPor          *string
	Itens                []RomaneioItem
}

// Terminal indica se o status atual é terminal (aprovado ou cancelado).
func (r *Romaneio) Terminal() bool {
	return r.Status == StatusAprovado || r.Status == StatusCancelado
}

// RomaneioItem é uma linha de material dentro de um romaneio.
type RomaneioItem struct {
	ID                 string
	RomaneioID         string
	MaterialID         string
	Quantidade         int64  // sempre positiva; o sinal é derivado do tipo do romaneio
	QuantidadeOriginal *int64 // em devoluções: quantidade retirada na origem (exibição)
	ValorUnitario      *decimal.Decimal
	NumeroSerie        *string
	Observacoes        string
}
