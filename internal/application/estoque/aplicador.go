package estoque

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// Delta é uma variação de quantidade resolvida para um material, pronta para
// ser aplicada contra o razão de estoque.
type Delta struct {
	MaterialID        string
	Quantidade        int64 // negativo saída, positivo entrada, zero realocação
	Motivo            string
	RomaneioID        *string
	ReferenciaExterna *string
	// NovoCentroCustoID, quando presente, realoca o material para esse centro
	// de custo junto com a variação de quantidade.
	NovoCentroCustoID *string
	UsuarioID         string
}

// Aplicador aplica deltas de estoque: atualiza a quantidade do material sob
// bloqueio de linha e grava um lançamento imutável no razão por material.
// Os repositórios recebidos devem estar atados à transação do chamador
// (TxRunner); o caminho de compensação de AplicarTodos existe como defesa
// para repositórios sem transação nativa.
type Aplicador struct{}

// NewAplicador constrói o aplicador.
func NewAplicador() *Aplicador {
	return &Aplicador{}
}

// Aplicar aplica um único delta: lê o material com bloqueio de linha,
// recalcula a quantidade, rejeita resultado negativo (re-checagem defensiva,
// mesmo com o Validador já executado), grava a nova quantidade, realoca o
// centro de custo quando pedido e registra o lançamento no razão.
func (a *Aplicador) Aplicar(
	movRepo repository.MovimentacaoRepository,
	materialRepo repository.MaterialRepository,
	d Delta,
) error {
	mat, err := materialRepo.GetForUpdate(d.MaterialID)
	if err != nil {
		return fmt.Errorf("%w: ler material %s: %v", domain.ErrFalhaPersistencia, d.MaterialID, err)
	}
	if mat == nil {
		return fmt.Errorf("%w: %s", domain.ErrMaterialNaoEncontrado, d.MaterialID)
	}

	anterior := mat.Quantidade
	posterior := anterior + d.Quantidade
	if posterior < 0 {
		return fmt.Errorf("%w: material %s: atual %d, delta %d",
			domain.ErrEstoqueInsuficiente, mat.Codigo, anterior, d.Quantidade)
	}

	if err := materialRepo.UpdateQuantidade(mat.ID, posterior); err != nil {
		return fmt.Errorf("%w: atualizar quantidade de %s: %v", domain.ErrFalhaPersistencia, mat.ID, err)
	}
	if d.NovoCentroCustoID != nil {
		if err := materialRepo.UpdateCentroCusto(mat.ID, d.NovoCentroCustoID); err != nil {
			return fmt.Errorf("%w: realocar centro de custo de %s: %v", domain.ErrFalhaPersistencia, mat.ID, err)
		}
	}

	mov := &entity.Movimentacao{
		ID:                  uuid.New().String(),
		MaterialID:          mat.ID,
		Delta:               d.Quantidade,
		QuantidadeAnterior:  anterior,
		QuantidadePosterior: posterior,
		Motivo:              d.Motivo,
		RomaneioID:          d.RomaneioID,
		ReferenciaExterna:   d.ReferenciaExterna,
		UsuarioID:           d.UsuarioID,
		CriadoEm:            time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return fmt.Errorf("%w: gravar lançamento de %s: %v", domain.ErrFalhaPersistencia, mat.ID, err)
	}
	return nil
}

// aplicado guarda o estado pré-lote de um material, capturado antes de o
// delta ser aplicado, para a escrita compensatória em caso de falha no lote.
type aplicado struct {
	materialID    string
	quantidade    int64
	centroCustoID *string
	realocado     bool
	delta         Delta
}

// AplicarTodos aplica os deltas um a um, na ordem definida pelo documento.
// Se algum falhar, desfaz tudo o que o lote chegou a gravar, devolvendo cada
// material à quantidade (e ao centro de custo) pré-lote. Sob transação nativa
// do banco a compensação é inalcançável na prática, mas mantém o contrato do
// lote para qualquer implementação dos portos.
func (a *Aplicador) AplicarTodos(
	movRepo repository.MovimentacaoRepository,
	materialRepo repository.MaterialRepository,
	deltas []Delta,
) error {
	if len(deltas) == 0 {
		return fmt.Errorf("%w: lote vazio", domain.ErrEntradaInvalida)
	}

	aplicados := make([]aplicado, 0, len(deltas))
	for _, d := range deltas {
		mat, err := materialRepo.GetForUpdate(d.MaterialID)
		if err != nil {
			return a.compensar(movRepo, materialRepo, aplicados,
				fmt.Errorf("%w: ler material %s: %v", domain.ErrFalhaPersistencia, d.MaterialID, err))
		}
		if mat == nil {
			return a.compensar(movRepo, materialRepo, aplicados,
				fmt.Errorf("%w: %s", domain.ErrMaterialNaoEncontrado, d.MaterialID))
		}
		// O snapshot entra antes de aplicar: uma falha parcial de Aplicar
		// (quantidade já gravada, lançamento do razão não) também precisa
		// ser desfeita.
		aplicados = append(aplicados, aplicado{
			materialID:    mat.ID,
			quantidade:    mat.Quantidade,
			centroCustoID: mat.CentroCustoID,
			realocado:     d.NovoCentroCustoID != nil,
			delta:         d,
		})
		if err := a.Aplicar(movRepo, materialRepo, d); err != nil {
			return a.compensar(movRepo, materialRepo, aplicados, err)
		}
	}
	return nil
}

// compensar desfaz, em ordem inversa, o que o lote chegou a gravar: relê o
// estado corrente de cada material e o devolve ao snapshot pré-lote. O razão é
// append-only, então cada restauração de quantidade entra como lançamento de
// AJUSTE cobrindo exatamente a porção efetivamente aplicada; um material que
// não chegou a mudar não gera lançamento. Devolve o erro original (anotado se
// a própria compensação falhar).
func (a *Aplicador) compensar(
	movRepo repository.MovimentacaoRepository,
	materialRepo repository.MaterialRepository,
	aplicados []aplicado,
	causa error,
) error {
	for i := len(aplicados) - 1; i >= 0; i-- {
		ap := aplicados[i]
		mat, err := materialRepo.GetForUpdate(ap.materialID)
		if err != nil {
			return fmt.Errorf("%v; compensação falhou para %s: %w", causa, ap.materialID, err)
		}
		if mat == nil {
			return fmt.Errorf("%v; compensação falhou para %s: material ausente", causa, ap.materialID)
		}
		if mat.Quantidade != ap.quantidade {
			if err := materialRepo.UpdateQuantidade(ap.materialID, ap.quantidade); err != nil {
				return fmt.Errorf("%v; compensação falhou para %s: %w", causa, ap.materialID, err)
			}
			mov := &entity.Movimentacao{
				ID:                  uuid.New().String(),
				MaterialID:          ap.materialID,
				Delta:               ap.quantidade - mat.Quantidade,
				QuantidadeAnterior:  mat.Quantidade,
				QuantidadePosterior: ap.quantidade,
				Motivo:              entity.MotivoAjuste,
				RomaneioID:          ap.delta.RomaneioID,
				UsuarioID:           ap.delta.UsuarioID,
				CriadoEm:            time.Now(),
			}
			if err := movRepo.Create(mov); err != nil {
				return fmt.Errorf("%v; compensação falhou para %s: %w", causa, ap.materialID, err)
			}
		}
		if ap.realocado {
			if err := materialRepo.UpdateCentroCusto(ap.materialID, ap.centroCustoID); err != nil {
				return fmt.Errorf("%v; compensação falhou para %s: %w", causa, ap.materialID, err)
			}
		}
	}
	return causa
}
