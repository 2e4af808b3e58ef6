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

var _ repository.CentroCustoRepository = (*CentroCustoRepo)(nil)

// CentroCustoRepo implementação de CentroCustoRepository sobre PostgreSQL.
type CentroCustoRepo struct {
	q Querier
}

// NewCentroCustoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCentroCustoRepository(q Querier) *CentroCustoRepo {
	return &CentroCustoRepo{q: q}
}

// Create persiste um centro de custo.
func (r *CentroCustoRepo) Create(cc *entity.CentroCusto) error {
	query := `
		INSERT INTO centros_custo (id, codigo, nome, ativo, criado_em)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, cc.ID, cc.Codigo, cc.Nome, cc.Ativo, cc.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert centro de custo: %w", err)
	}
	return nil
}

// GetByID obtém um centro de custo. Devolve nil sem erro quando não existe.
func (r *CentroCustoRepo) GetByID(id string) (*entity.CentroCusto, error) {
	query := `SELECT id, codigo, nome, ativo, criado_em FROM centros_custo WHERE id = $1`
	var cc entity.CentroCusto
	err := r.q.QueryRow(context.Background(), query, id).Scan(&cc.ID, &cc.Codigo, &cc.Nome, &cc.Ativo, &cc.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get centro de custo: %w", err)
	}
	return &cc, nil
}

// List lista centros de custo em ordem de código.
func (r *CentroCustoRepo) List(apenasAtivos bool, limit, offset int) ([]*entity.CentroCusto, error) {
	query := `
		SELECT id, codigo, nome, ativo, criado_em
		FROM centros_custo
		WHERE ($1 = false OR ativo)
		ORDER BY codigo
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, apenasAtivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list centros de custo: %w", err)
	}
	defer rows.Close()

	var out []*entity.CentroCusto
	for rows.Next() {
		var cc entity.CentroCusto
		if err := rows.Scan(&cc.ID, &cc.Codigo, &cc.Nome, &cc.Ativo, &cc.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan centro de custo: %w", err)
		}
		out = append(out, &cc)
	}
	return out, rows.Err()
}

// Update grava nome e flag de ativo.
func (r *CentroCustoRepo) Update(cc *entity.CentroCusto) error {
	query := `UPDATE centros_custo SET nome = $2, ativo = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, cc.ID, cc.Nome, cc.Ativo)
	if err != nil {
		return fmt.Errorf("update centro de custo: %w", err)
	}
	return nil
}
