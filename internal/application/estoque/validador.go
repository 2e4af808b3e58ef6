package estoque

import (
	"context"
	"fmt"
	"strings"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// Motivos de falha de validação de estoque.
const (
	FalhaNaoEncontrado       = "NAO_ENCONTRADO"
	FalhaQuantidadeInvalida  = "QUANTIDADE_INVALIDA"
	FalhaEstoqueInsuficiente = "ESTOQUE_INSUFICIENTE"
)

// ItemValidacao é um pedido de verificação de estoque para um material.
type ItemValidacao struct {
	MaterialID string
	Quantidade int64
}

// FalhaValidacao descreve um item reprovado na validação.
type FalhaValidacao struct {
	MaterialID string
	Codigo     string
	Nome       string
	Motivo     string
	Solicitada int64
	Disponivel int64
	Faltante   int64
}

// ResultadoValidacao agrega o resultado da validação de todos os itens.
// Valido=false carrega todas as falhas de uma vez, nunca apenas a primeira,
// para que o operador corrija o pedido inteiro numa única passada.
type ResultadoValidacao struct {
	Valido      bool
	Disponiveis map[string]int64 // quantidade disponível por material validado
	Falhas      []FalhaValidacao
}

// Mensagem monta o texto legível, uma linha por falha.
func (r *ResultadoValidacao) Mensagem() string {
	if r.Valido {
		return ""
	}
	linhas := make([]string, 0, len(r.Falhas))
	for _, f := range r.Falhas {
		switch f.Motivo {
		case FalhaNaoEncontrado:
			linhas = append(linhas, fmt.Sprintf("material %s não encontrado", f.MaterialID))
		case FalhaQuantidadeInvalida:
			linhas = append(linhas, fmt.Sprintf("material %s: quantidade solicitada inválida (%d)", nomeOuID(f), f.Solicitada))
		default:
			linhas = append(linhas, fmt.Sprintf("material %s: solicitado %d, disponível %d (faltam %d)",
				nomeOuID(f), f.Solicitada, f.Disponivel, f.Faltante))
		}
	}
	return strings.Join(linhas, "\n")
}

func nomeOuID(f FalhaValidacao) string {
	if f.Codigo != "" {
		return f.Codigo + " - " + f.Nome
	}
	return f.MaterialID
}

// Validador verifica quantidades solicitadas contra o estoque atual antes de
// qualquer operação mutadora. Somente leitura: nunca altera estado.
type Validador struct {
	materialRepo repository.MaterialRepository
}

// NewValidador constrói o validador.
func NewValidador(materialRepo repository.MaterialRepository) *Validador {
	return &Validador{materialRepo: materialRepo}
}

// Validar verifica todos os itens e acumula as falhas (não interrompe na
// primeira). Quantidade <= 0 é erro do chamador, não insuficiência de estoque.
// O erro de retorno sinaliza apenas falha de leitura do repositório.
func (v *Validador) Validar(_ context.Context, itens []ItemValidacao) (*ResultadoValidacao, error) {
	if len(itens) == 0 {
		return nil, fmt.Errorf("%w: nenhum item informado", domain.ErrEntradaInvalida)
	}

	resultado := &ResultadoValidacao{
		Valido:      true,
		Disponiveis: make(map[string]int64, len(itens)),
	}
	for _, item := range itens {
		if item.Quantidade <= 0 {
			resultado.Valido = false
			resultado.Falhas = append(resultado.Falhas, FalhaValidacao{
				MaterialID: item.MaterialID,
				Motivo:     FalhaQuantidadeInvalida,
				Solicitada: item.Quantidade,
			})
			continue
		}
		mat, err := v.materialRepo.GetByID(item.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("%w: consultar material %s: %v", domain.ErrFalhaPersistencia, item.MaterialID, err)
		}
		if mat == nil {
			resultado.Valido = false
			resultado.Falhas = append(resultado.Falhas, FalhaValidacao{
				MaterialID: item.MaterialID,
				Motivo:     FalhaNaoEncontrado,
				Solicitada: item.Quantidade,
			})
			continue
		}
		if item.Quantidade > mat.Quantidade {
			resultado.Valido = false
			resultado.Falhas = append(resultado.Falhas, FalhaValidacao{
				MaterialID: mat.ID,
				Codigo:     mat.Codigo,
				Nome:       mat.Nome,
				Motivo:     FalhaEstoqueInsuficiente,
				Solicitada: item.Quantidade,
				Disponivel: mat.Quantidade,
				Faltante:   item.Quantidade - mat.Quantidade,
			})
			continue
		}
		resultado.Disponiveis[mat.ID] = mat.Quantidade
	}
	return resultado, nil
}
