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

// FuncionarioUseCase CRUD de funcionários.
type FuncionarioUseCase struct {
	repo repository.FuncionarioRepository
}

// NewFuncionarioUseCase constrói o caso de uso.
func NewFuncionarioUseCase(repo repository.FuncionarioRepository) *FuncionarioUseCase {
	return &FuncionarioUseCase{repo: repo}
}

// Criar cadastra um funcionário ativo.
func (uc *FuncionarioUseCase) Criar(_ context.Context, in dto.CriarFuncionarioRequest) (*entity.Funcionario, error) {
	if in.Matricula == "" || in.Nome == "" {
		return nil, fmt.Errorf("%w: matrícula e nome são obrigatórios", domain.ErrEntradaInvalida)
	}
	f := &entity.Funcionario{
		ID:        uuid.New().String(),
		Matricula: in.Matricula,
		Nome:      in.Nome,
		Cargo:     in.Cargo,
		Ativo:     true,
		CriadoEm:  time.Now(),
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, fmt.Errorf("%w: gravar funcionário: %v", domain.ErrFalhaPersistencia, err)
	}
	return f, nil
}

// GetByID devolve um funcionário.
func (uc *FuncionarioUseCase) GetByID(_ context.Context, id string) (*entity.Funcionario, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar funcionário: %v", domain.ErrFalhaPersistencia, err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: funcionário %s", domain.ErrNaoEncontrado, id)
	}
	return f, nil
}

// Listar lista funcionários.
func (uc *FuncionarioUseCase) Listar(_ context.Context, apenasAtivos bool, limit, offset int) ([]*entity.Funcionario, error) {
	return uc.repo.List(apenasAtivos, limit, offset)
}
