package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColunas = `id, codigo, nome, nome_busca, quantidade, valor_unitario, ativo, centro_custo_id, criado_em, atualizado_em`

// MaterialRepo implementação de MaterialRepository sobre PostgreSQL (usável com pool ou tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador de materiais. Passar pool ou tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste um novo material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materiais (` + materialColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Codigo, m.Nome, m.NomeBusca, m.Quantidade, m.ValorUnitario,
		m.Ativo, m.CentroCustoID, m.CriadoEm, m.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtém um material por ID. Devolve nil sem erro quando não existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColunas+` FROM materiais WHERE id = $1`, id)
}

// GetByCodigo obtém um material pelo código humano.
func (r *MaterialRepo) GetByCodigo(codigo string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColunas+` FROM materiais WHERE codigo = $1`, codigo)
}

// GetForUpdate obtém o material e bloqueia a linha (SELECT FOR UPDATE) até o
// fim da transação corrente.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColunas+` FROM materiais WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) get(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Codigo, &m.Nome, &m.NomeBusca, &m.Quantidade, &m.ValorUnitario,
		&m.Ativo, &m.CentroCustoID, &m.CriadoEm, &m.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List busca materiais; o termo já chega normalizado (sem acentos,
// minúsculas) e casa contra nome_busca e codigo.
func (r *MaterialRepo) List(busca string, apenasAtivos bool, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColunas + `
		FROM materiais
		WHERE ($1 = '' OR nome_busca LIKE '%' || $1 || '%' OR lower(codigo) LIKE '%' || $1 || '%')
		  AND ($2 = false OR ativo)
		ORDER BY codigo
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, busca, apenasAtivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materiais: %w", err)
	}
	defer rows.Close()

	var out []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Codigo, &m.Nome, &m.NomeBusca, &m.Quantidade, &m.ValorUnitario,
			&m.Ativo, &m.CentroCustoID, &m.CriadoEm, &m.AtualizadoEm,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update grava os campos de catálogo (nunca quantidade nem centro de custo).
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materiais
		SET nome = $2, nome_busca = $3, valor_unitario = $4, ativo = $5, atualizado_em = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Nome, m.NomeBusca, m.ValorUnitario, m.Ativo, m.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateQuantidade grava a quantidade corrente. Chamar apenas com a linha
// bloqueada por GetForUpdate na mesma transação.
func (r *MaterialRepo) UpdateQuantidade(id string, quantidade int64) error {
	query := `UPDATE materiais SET quantidade = $2, atualizado_em = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantidade)
	if err != nil {
		return fmt.Errorf("update quantidade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNaoEncontrado
	}
	return nil
}

// UpdateCentroCusto realoca o material para outro centro de custo (nil limpa).
func (r *MaterialRepo) UpdateCentroCusto(id string, centroCustoID *string) error {
	query := `UPDATE materiais SET centro_custo_id = $2, atualizado_em = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, centroCustoID)
	if err != nil {
		return fmt.Errorf("update centro de custo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNaoEncontrado
	}
	return nil
}
