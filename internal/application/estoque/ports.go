package estoque

import (
	"context"

	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante atomicidade para o motor
// de estoque: ou todos os lançamentos do lote são confirmados, ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimentacaoRepository,
		materialRepo repository.MaterialRepository,
		romaneioRepo repository.RomaneioRepository,
	) error) error
}
