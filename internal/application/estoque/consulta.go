package estoque

import (
	"context"
	"fmt"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// Consulta leituras do razão de estoque (sem mutação).
type Consulta struct {
	movRepo repository.MovimentacaoRepository
}

// NewConsulta constrói a consulta.
func NewConsulta(movRepo repository.MovimentacaoRepository) *Consulta {
	return &Consulta{movRepo: movRepo}
}

// PorMaterial lista os lançamentos de um material, mais recentes primeiro.
func (c *Consulta) PorMaterial(_ context.Context, materialID string, limit, offset int) ([]*entity.Movimentacao, error) {
	if materialID == "" {
		return nil, fmt.Errorf("%w: material é obrigatório", domain.ErrEntradaInvalida)
	}
	return c.movRepo.ListByMaterial(materialID, limit, offset)
}

// PorRomaneio lista os lançamentos gerados por um romaneio.
func (c *Consulta) PorRomaneio(_ context.Context, romaneioID string) ([]*entity.Movimentacao, error) {
	if romaneioID == "" {
		return nil, fmt.Errorf("%w: romaneio é obrigatório", domain.ErrEntradaInvalida)
	}
	return c.movRepo.ListByRomaneio(romaneioID)
}
