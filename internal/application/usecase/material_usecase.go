package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// normalizador remove marcas diacríticas (NFD + descarte de Mn) para a
// coluna de busca: "Parafuso Sextavado" e "parafuso sextavado" casam igual.
var normalizador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizarBusca devolve o termo sem acentos e em minúsculas.
func NormalizarBusca(s string) string {
	out, _, err := transform.String(normalizador, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// MaterialUseCase CRUD de materiais do catálogo. Nunca altera quantidade nem
// centro de custo: esses campos pertencem ao aplicador de movimentações.
type MaterialUseCase struct {
	materialRepo    repository.MaterialRepository
	centroCustoRepo repository.CentroCustoRepository
}

// NewMaterialUseCase constrói o caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository, centroCustoRepo repository.CentroCustoRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo, centroCustoRepo: centroCustoRepo}
}

// Criar cadastra um material com quantidade zero.
func (uc *MaterialUseCase) Criar(_ context.Context, in dto.CriarMaterialRequest) (*entity.Material, error) {
	if in.Codigo == "" || in.Nome == "" {
		return nil, fmt.Errorf("%w: código e nome são obrigatórios", domain.ErrEntradaInvalida)
	}
	existente, err := uc.materialRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrDuplicado, in.Codigo)
	}
	if in.CentroCustoID != nil {
		cc, err := uc.centroCustoRepo.GetByID(*in.CentroCustoID)
		if err != nil {
			return nil, fmt.Errorf("%w: consultar centro de custo: %v", domain.ErrFalhaPersistencia, err)
		}
		if cc == nil {
			return nil, fmt.Errorf("%w: centro de custo %s", domain.ErrNaoEncontrado, *in.CentroCustoID)
		}
	}
	now := time.Now()
	mat := &entity.Material{
		ID:            uuid.New().String(),
		Codigo:        in.Codigo,
		Nome:          in.Nome,
		NomeBusca:     NormalizarBusca(in.Nome),
		Quantidade:    0,
		ValorUnitario: in.ValorUnitario,
		Ativo:         true,
		CentroCustoID: in.CentroCustoID,
		CriadoEm:      now,
		AtualizadoEm:  now,
	}
	if err := uc.materialRepo.Create(mat); err != nil {
		return nil, fmt.Errorf("%w: gravar material: %v", domain.ErrFalhaPersistencia, err)
	}
	return mat, nil
}

// Atualizar edita nome, valor unitário e flag de ativo.
func (uc *MaterialUseCase) Atualizar(_ context.Context, id string, in dto.AtualizarMaterialRequest) (*entity.Material, error) {
	mat, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
	}
	if mat == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMaterialNaoEncontrado, id)
	}
	if in.Nome != "" {
		mat.Nome = in.Nome
		mat.NomeBusca = NormalizarBusca(in.Nome)
	}
	if in.ValorUnitario != nil {
		mat.ValorUnitario = in.ValorUnitario
	}
	if in.Ativo != nil {
		mat.Ativo = *in.Ativo
	}
	mat.AtualizadoEm = time.Now()
	if err := uc.materialRepo.Update(mat); err != nil {
		return nil, fmt.Errorf("%w: gravar material: %v", domain.ErrFalhaPersistencia, err)
	}
	return mat, nil
}

// GetByID devolve um material.
func (uc *MaterialUseCase) GetByID(_ context.Context, id string) (*entity.Material, error) {
	mat, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
	}
	if mat == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMaterialNaoEncontrado, id)
	}
	return mat, nil
}

// Listar busca materiais; o termo é normalizado (sem acentos, minúsculas)
// antes de ir ao repositório.
func (uc *MaterialUseCase) Listar(_ context.Context, busca string, apenasAtivos bool, limit, offset int) ([]*entity.Material, error) {
	return uc.materialRepo.List(NormalizarBusca(busca), apenasAtivos, limit, offset)
}
