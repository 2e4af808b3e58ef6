// Package romaneio contém os casos de uso de criação e consulta de romaneios.
// A aprovação fica no pacote aprovacao; aqui os documentos nascem PENDENTES.
package romaneio

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

// UseCase cria e consulta romaneios.
type UseCase struct {
	romaneioRepo    repository.RomaneioRepository
	materialRepo    repository.MaterialRepository
	centroCustoRepo repository.CentroCustoRepository
	funcionarioRepo repository.FuncionarioRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	romaneioRepo repository.RomaneioRepository,
	materialRepo repository.MaterialRepository,
	centroCustoRepo repository.CentroCustoRepository,
	funcionarioRepo repository.FuncionarioRepository,
) *UseCase {
	return &UseCase{
		romaneioRepo:    romaneioRepo,
		materialRepo:    materialRepo,
		centroCustoRepo: centroCustoRepo,
		funcionarioRepo: funcionarioRepo,
	}
}

// Criar valida e persiste um romaneio PENDENTE com seus itens.
// Regras: tipo conhecido; ao menos um item com quantidade positiva;
// responsável ou por funcionário cadastrado ou por nome livre (exclusivo);
// centros de custo existentes; devolução referencia retirada APROVADA e os
// itens recebem a quantidade original da retirada para exibição.
func (uc *UseCase) Criar(ctx context.Context, usuarioID string, in dto.CriarRomaneioRequest) (*entity.Romaneio, error) {
	switch in.Tipo {
	case entity.TipoRetirada, entity.TipoDevolucao, entity.TipoTransferencia:
	default:
		return nil, fmt.Errorf("%w: tipo de romaneio desconhecido %q", domain.ErrEntradaInvalida, in.Tipo)
	}
	if len(in.Itens) == 0 {
		return nil, fmt.Errorf("%w: romaneio sem itens", domain.ErrEntradaInvalida)
	}
	if (in.FuncionarioID == nil) == (in.ResponsavelNome == nil) {
		return nil, fmt.Errorf("%w: informe funcionário ou nome do responsável, nunca ambos", domain.ErrEntradaInvalida)
	}
	if in.CentroCustoOrigemID == "" || in.CentroCustoDestinoID == "" {
		return nil, fmt.Errorf("%w: centros de custo de origem e destino são obrigatórios", domain.ErrEntradaInvalida)
	}

	if err := uc.checarCentroCusto(in.CentroCustoOrigemID); err != nil {
		return nil, err
	}
	if err := uc.checarCentroCusto(in.CentroCustoDestinoID); err != nil {
		return nil, err
	}
	if in.FuncionarioID != nil {
		f, err := uc.funcionarioRepo.GetByID(*in.FuncionarioID)
		if err != nil {
			return nil, fmt.Errorf("%w: consultar funcionário: %v", domain.ErrFalhaPersistencia, err)
		}
		if f == nil || !f.Ativo {
			return nil, fmt.Errorf("%w: funcionário %s", domain.ErrNaoEncontrado, *in.FuncionarioID)
		}
	}

	// Quantidades originais por material, preenchidas só em devoluções.
	var originais map[string]int64
	if in.Tipo == entity.TipoDevolucao && in.RomaneioOrigemID != nil {
		var err error
		originais, err = uc.carregarOrigem(*in.RomaneioOrigemID)
		if err != nil {
			return nil, err
		}
	}
	if in.Tipo != entity.TipoDevolucao && in.RomaneioOrigemID != nil {
		return nil, fmt.Errorf("%w: romaneio de origem só é permitido em devoluções", domain.ErrEntradaInvalida)
	}

	now := time.Now()
	rom := &entity.Romaneio{
		ID:                   uuid.New().String(),
		Tipo:                 in.Tipo,
		Status:               entity.StatusPendente,
		RomaneioOrigemID:     in.RomaneioOrigemID,
		CentroCustoOrigemID:  in.CentroCustoOrigemID,
		CentroCustoDestinoID: in.CentroCustoDestinoID,
		FuncionarioID:        in.FuncionarioID,
		ResponsavelNome:      in.ResponsavelNome,
		Observacoes:          in.Observacoes,
		Data:                 now,
		CriadoEm:             now,
		CriadoPor:            usuarioID,
	}
	for _, item := range in.Itens {
		if item.Quantidade <= 0 {
			return nil, fmt.Errorf("%w: quantidade inválida para o material %s", domain.ErrEntradaInvalida, item.MaterialID)
		}
		mat, err := uc.materialRepo.GetByID(item.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
		}
		if mat == nil || !mat.Ativo {
			return nil, fmt.Errorf("%w: %s", domain.ErrMaterialNaoEncontrado, item.MaterialID)
		}
		romItem := entity.RomaneioItem{
			ID:            uuid.New().String(),
			RomaneioID:    rom.ID,
			MaterialID:    item.MaterialID,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			NumeroSerie:   item.NumeroSerie,
			Observacoes:   item.Observacoes,
		}
		if originais != nil {
			if q, ok := originais[item.MaterialID]; ok {
				romItem.QuantidadeOriginal = &q
			}
		}
		rom.Itens = append(rom.Itens, romItem)
	}

	if err := uc.romaneioRepo.Create(rom); err != nil {
		return nil, fmt.Errorf("%w: gravar romaneio: %v", domain.ErrFalhaPersistencia, err)
	}
	return rom, nil
}

// GetByID devolve o romaneio com itens.
func (uc *UseCase) GetByID(_ context.Context, id string) (*entity.Romaneio, error) {
	rom, err := uc.romaneioRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: carregar romaneio: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom == nil {
		return nil, fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, id)
	}
	return rom, nil
}

// List lista romaneios com filtros opcionais de tipo e status.
func (uc *UseCase) List(_ context.Context, tipo, status string, limit, offset int) ([]*entity.Romaneio, error) {
	return uc.romaneioRepo.List(tipo, status, limit, offset)
}

func (uc *UseCase) checarCentroCusto(id string) error {
	cc, err := uc.centroCustoRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: consultar centro de custo: %v", domain.ErrFalhaPersistencia, err)
	}
	if cc == nil || !cc.Ativo {
		return fmt.Errorf("%w: centro de custo %s", domain.ErrNaoEncontrado, id)
	}
	return nil
}

// carregarOrigem valida a retirada referenciada por uma devolução e devolve
// a quantidade retirada por material (verdade apenas de exibição).
func (uc *UseCase) carregarOrigem(origemID string) (map[string]int64, error) {
	origem, err := uc.romaneioRepo.GetByID(origemID)
	if err != nil {
		return nil, fmt.Errorf("%w: carregar retirada de origem: %v", domain.ErrFalhaPersistencia, err)
	}
	if origem == nil {
		return nil, fmt.Errorf("%w: retirada de origem %s", domain.ErrNaoEncontrado, origemID)
	}
	if origem.Tipo != entity.TipoRetirada {
		return nil, fmt.Errorf("%w: romaneio de origem %d não é uma retirada", domain.ErrEntradaInvalida, origem.Numero)
	}
	if origem.Status != entity.StatusAprovado {
		return nil, fmt.Errorf("%w: retirada de origem %d está %s", domain.ErrTransicaoInvalida, origem.Numero, origem.Status)
	}
	originais := make(map[string]int64, len(origem.Itens))
	for _, item := range origem.Itens {
		originais[item.MaterialID] += item.Quantidade
	}
	return originais, nil
}
