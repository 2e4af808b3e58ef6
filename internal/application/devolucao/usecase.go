// Package devolucao expõe o agregador de devoluções: o status derivado de
// uma retirada frente às devoluções aprovadas que a referenciam.
package devolucao

import (
	"context"
	"fmt"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
	domromaneio "github.com/ldonato/almoxarifado-api/internal/domain/romaneio"
)

// UseCase calcula o status de devolução de uma retirada. Somente leitura:
// recalculado a cada chamada, nunca persistido, então sempre reflete o
// conjunto mais recente de devoluções aprovadas.
type UseCase struct {
	romaneioRepo repository.RomaneioRepository
}

// NewUseCase constrói o agregador.
func NewUseCase(romaneioRepo repository.RomaneioRepository) *UseCase {
	return &UseCase{romaneioRepo: romaneioRepo}
}

// StatusDevolucao carrega a retirada (precisa ser do tipo RETIRADA e estar
// APROVADA), lista as devoluções aprovadas que a referenciam e delega o
// cálculo ao serviço de domínio.
func (uc *UseCase) StatusDevolucao(_ context.Context, retiradaID string) (*domromaneio.StatusDevolucao, error) {
	rom, err := uc.romaneioRepo.GetByID(retiradaID)
	if err != nil {
		return nil, fmt.Errorf("%w: carregar retirada: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom == nil {
		return nil, fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, retiradaID)
	}
	if rom.Tipo != entity.TipoRetirada {
		return nil, fmt.Errorf("%w: romaneio %d não é uma retirada", domain.ErrEntradaInvalida, rom.Numero)
	}
	if rom.Status != entity.StatusAprovado {
		return nil, fmt.Errorf("%w: retirada %d está %s", domain.ErrTransicaoInvalida, rom.Numero, rom.Status)
	}

	devolucoes, err := uc.romaneioRepo.ListDevolucoesAprovadasPorOrigem(rom.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: listar devoluções: %v", domain.ErrFalhaPersistencia, err)
	}
	return domromaneio.CalcularStatusDevolucao(rom, devolucoes), nil
}
