package postgres

import (
	"context"
	"fmt"

	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

const movimentacaoColunas = `id, material_id, delta, quantidade_anterior, quantidade_posterior,
	motivo, romaneio_id, referencia_externa, usuario_id, criado_em`

// MovimentacaoRepo implementação do razão de estoque sobre PostgreSQL
// (usável com pool ou tx). A tabela é append-only: só há INSERT e SELECT.
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Create grava um lançamento no razão.
func (r *MovimentacaoRepo) Create(mov *entity.Movimentacao) error {
	query := `
		INSERT INTO movimentacoes (` + movimentacaoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.MaterialID, mov.Delta, mov.QuantidadeAnterior, mov.QuantidadePosterior,
		mov.Motivo, mov.RomaneioID, mov.ReferenciaExterna, mov.UsuarioID, mov.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("insert movimentação: %w", err)
	}
	return nil
}

// ListByMaterial lista os lançamentos de um material, mais recentes primeiro.
func (r *MovimentacaoRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Movimentacao, error) {
	query := `
		SELECT ` + movimentacaoColunas + `
		FROM movimentacoes
		WHERE material_id = $1
		ORDER BY criado_em DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, materialID, limit, offset)
}

// ListByRomaneio lista os lançamentos gerados por um romaneio, na ordem de gravação.
func (r *MovimentacaoRepo) ListByRomaneio(romaneioID string) ([]*entity.Movimentacao, error) {
	query := `
		SELECT ` + movimentacaoColunas + `
		FROM movimentacoes
		WHERE romaneio_id = $1
		ORDER BY criado_em`
	return r.list(query, romaneioID)
}

func (r *MovimentacaoRepo) list(query string, args ...any) ([]*entity.Movimentacao, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentações: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movimentacao
	for rows.Next() {
		var mov entity.Movimentacao
		if err := rows.Scan(
			&mov.ID, &mov.MaterialID, &mov.Delta, &mov.QuantidadeAnterior, &mov.QuantidadePosterior,
			&mov.Motivo, &mov.RomaneioID, &mov.ReferenciaExterna, &mov.UsuarioID, &mov.CriadoEm,
		); err != nil {
			return nil, fmt.Errorf("scan movimentação: %w", err)
		}
		out = append(out, &mov)
	}
	return out, rows.Err()
}
