// Package nfe implementa a importação de notas fiscais eletrônicas:
// entrada de estoque a partir do XML da NF-e do fornecedor.
package nfe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	appusecase "github.com/ldonato/almoxarifado-api/internal/application/usecase"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// ResultadoImportacao resume o que a importação criou e movimentou.
type ResultadoImportacao struct {
	Chave             string   `json:"chave"`
	Emitente          string   `json:"emitente"`
	MateriaisCriados  []string `json:"materiais_criados"`  // códigos novos no catálogo
	ItensMovimentados int      `json:"itens_movimentados"` // lançamentos de entrada gravados
}

// ImportUseCase importa uma NF-e: casa cada item com um material pelo código
// (criando os ausentes com quantidade zero) e registra a entrada pelo
// aplicador de movimentações, nunca gravando quantidade diretamente.
type ImportUseCase struct {
	txRunner     estoque.TxRunner
	materialRepo repository.MaterialRepository
	parser       Parser
	aplicador    *estoque.Aplicador
}

// NewImportUseCase constrói o caso de uso de importação.
func NewImportUseCase(
	txRunner estoque.TxRunner,
	materialRepo repository.MaterialRepository,
	parser Parser,
	aplicador *estoque.Aplicador,
) *ImportUseCase {
	return &ImportUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		parser:       parser,
		aplicador:    aplicador,
	}
}

// Importar processa o XML e dá entrada nos itens em uma única transação.
func (uc *ImportUseCase) Importar(ctx context.Context, usuarioID string, xml []byte) (*ResultadoImportacao, error) {
	if len(xml) == 0 {
		return nil, fmt.Errorf("%w: XML vazio", domain.ErrEntradaInvalida)
	}
	nota, err := uc.parser.Parse(xml)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEntradaInvalida, err)
	}
	if len(nota.Itens) == 0 {
		return nil, fmt.Errorf("%w: NF-e sem itens de produto", domain.ErrEntradaInvalida)
	}

	resultado := &ResultadoImportacao{Chave: nota.Chave, Emitente: nota.Emitente}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimentacaoRepository,
		materialRepo repository.MaterialRepository,
		_ repository.RomaneioRepository,
	) error {
		deltas := make([]estoque.Delta, 0, len(nota.Itens))
		for _, item := range nota.Itens {
			if item.Quantidade <= 0 {
				return fmt.Errorf("%w: quantidade inválida para %s", domain.ErrEntradaInvalida, item.CodigoProduto)
			}
			mat, err := materialRepo.GetByCodigo(item.CodigoProduto)
			if err != nil {
				return fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
			}
			if mat == nil {
				mat, err = uc.criarMaterial(materialRepo, item)
				if err != nil {
					return err
				}
				resultado.MateriaisCriados = append(resultado.MateriaisCriados, mat.Codigo)
			}
			chave := nota.Chave
			deltas = append(deltas, estoque.Delta{
				MaterialID:        mat.ID,
				Quantidade:        item.Quantidade,
				Motivo:            entity.MotivoEntradaNfe,
				ReferenciaExterna: &chave,
				UsuarioID:         usuarioID,
			})
		}
		resultado.ItensMovimentados = len(deltas)
		return uc.aplicador.AplicarTodos(movRepo, materialRepo, deltas)
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

func (uc *ImportUseCase) criarMaterial(materialRepo repository.MaterialRepository, item ItemNota) (*entity.Material, error) {
	var valor *decimal.Decimal
	if item.ValorUnitario != "" {
		if v, err := decimal.NewFromString(item.ValorUnitario); err == nil {
			valor = &v
		}
	}
	now := time.Now()
	mat := &entity.Material{
		ID:            uuid.New().String(),
		Codigo:        item.CodigoProduto,
		Nome:          item.Descricao,
		NomeBusca:     appusecase.NormalizarBusca(item.Descricao),
		Quantidade:    0,
		ValorUnitario: valor,
		Ativo:         true,
		CriadoEm:      now,
		AtualizadoEm:  now,
	}
	if err := materialRepo.Create(mat); err != nil {
		return nil, fmt.Errorf("%w: criar material %s: %v", domain.ErrFalhaPersistencia, item.CodigoProduto, err)
	}
	return mat, nil
}
