package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// CentroCustoUseCase CRUD de centros de custo.
type CentroCustoUseCase struct {
	repo repository.CentroCustoRepository
}

// NewCentroCustoUseCase constrói o caso de uso.
func NewCentroCustoUseCase(repo repository.CentroCustoRepository) *CentroCustoUseCase {
	return &CentroCustoUseCase{repo: repo}
}

// Criar cadastra um centro de custo ativo.
func (uc *CentroCustoUseCase) Criar(_ context.Context, in dto.CriarCentroCustoRequest) (*entity.CentroCusto, error) {
	if in.Codigo == "" || in.Nome == "" {
		return nil, fmt.Errorf("%w: código e nome são obrigatórios", domain.ErrEntradaInvalida)
	}
	cc := &entity.CentroCusto{
		ID:       uuid.New().String(),
		Codigo:   in.Codigo,
		Nome:     in.Nome,
		Ativo:    true,
		CriadoEm: time.Now(),
	}
	if err := uc.repo.Create(cc); err != nil {
		return nil, fmt.Errorf("%w: gravar centro de custo: %v", domain.ErrFalhaPersistencia, err)
	}
	return cc, nil
}

// GetByID devolve um centro de custo.
func (uc *CentroCustoUseCase) GetByID(_ context.Context, id string) (*entity.CentroCusto, error) {
	cc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar centro de custo: %v", domain.ErrFalhaPersistencia, err)
	}
	if cc == nil {
		return nil, fmt.Errorf("%w: centro de custo %s", domain.ErrNaoEncontrado, id)
	}
	return cc, nil
}

// Listar lista centros de custo.
func (uc *CentroCustoUseCase) Listar(_ context.Context, apenasAtivos bool, limit, offset int) ([]*entity.CentroCusto, error) {
	return uc.repo.List(apenasAtivos, limit, offset)
}
