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

var _ repository.FuncionarioRepository = (*FuncionarioRepo)(nil)

// FuncionarioRepo implementação de FuncionarioRepository sobre PostgreSQL.
type FuncionarioRepo struct {
	q Querier
}

// NewFuncionarioRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewFuncionarioRepository(q Querier) *FuncionarioRepo {
	return &FuncionarioRepo{q: q}
}

// Create persiste um funcionário.
func (r *FuncionarioRepo) Create(f *entity.Funcionario) error {
	query := `
		INSERT INTO funcionarios (id, matricula, nome, cargo, ativo, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.Matricula, f.Nome, f.Cargo, f.Ativo, f.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert funcionário: %w", err)
	}
	return nil
}

// GetByID obtém um funcionário. Devolve nil sem erro quando não existe.
func (r *FuncionarioRepo) GetByID(id string) (*entity.Funcionario, error) {
	query := `SELECT id, matricula, nome, cargo, ativo, criado_em FROM funcionarios WHERE id = $1`
	var f entity.Funcionario
	err := r.q.QueryRow(context.Background(), query, id).Scan(&f.ID, &f.Matricula, &f.Nome, &f.Cargo, &f.Ativo, &f.CriadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get funcionário: %w", err)
	}
	return &f, nil
}

// List lista funcionários em ordem de matrícula.
func (r *FuncionarioRepo) List(apenasAtivos bool, limit, offset int) ([]*entity.Funcionario, error) {
	query := `
		SELECT id, matricula, nome, cargo, ativo, criado_em
		FROM funcionarios
		WHERE ($1 = false OR ativo)
		ORDER BY matricula
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, apenasAtivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list funcionários: %w", err)
	}
	defer rows.Close()

	var out []*entity.Funcionario
	for rows.Next() {
		var f entity.Funcionario
		if err := rows.Scan(&f.ID, &f.Matricula, &f.Nome, &f.Cargo, &f.Ativo, &f.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan funcionário: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// Update grava nome, cargo e flag de ativo.
func (r *FuncionarioRepo) Update(f *entity.Funcionario) error {
	query := `UPDATE funcionarios SET nome = $2, cargo = $3, ativo = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.Nome, f.Cargo, f.Ativo)
	if err != nil {
		return fmt.Errorf("update funcionário: %w", err)
	}
	return nil
}
