package entity

import "time"

// Motivos de movimentação aceitos pelo razão de estoque (enum fechado).
const (
	MotivoRetirada      = "RETIRADA"
	MotivoDevolucao     = "DEVOLUCAO"
	MotivoTransferencia = "TRANSFERENCIA"
	MotivoEntradaNfe    = "ENTRADA_NFE"
	MotivoAjuste        = "AJUSTE"
)

// Movimentacao é um lançamento imutável do razão de estoque.
// Invariante: QuantidadePosterior = QuantidadeAnterior + Delta; lançamentos
// nunca são editados nem removidos.
type Movimentacao struct {
	ID                  string
	MaterialID          string
	Delta               int64 // negativo saída, positivo entrada
	QuantidadeAnterior  int64
	QuantidadePosterior int64
	Motivo              string
	RomaneioID          *string // documento de origem, quando houver
	ReferenciaExterna   *string // ex.: chave da NF-e em importações
	UsuarioID           string
	CriadoEm            time.Time
}
