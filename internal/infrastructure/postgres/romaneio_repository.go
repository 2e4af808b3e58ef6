package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

var _ repository.RomaneioRepository = (*RomaneioRepo)(nil)

const romaneioColunas = `id, numero, tipo, status, romaneio_origem_id, centro_custo_origem_id,
	centro_custo_destino_id, funcionario_id, responsavel_nome, observacoes, data,
	criado_em, criado_por, aprovado_em, aprovado_por`

// RomaneioRepo implementação de RomaneioRepository sobre PostgreSQL (usável com pool ou tx).
type RomaneioRepo struct {
	q Querier
}

// NewRomaneioRepository constrói o adaptador de romaneios. Passar pool ou tx (Querier).
func NewRomaneioRepository(q Querier) *RomaneioRepo {
	return &RomaneioRepo{q: q}
}

// Create persiste o romaneio e seus itens; o número sequencial vem da
// sequence romaneios_numero_seq.
func (r *RomaneioRepo) Create(rom *entity.Romaneio) error {
	ctx := context.Background()
	query := `
		INSERT INTO romaneios (id, numero, tipo, status, romaneio_origem_id, centro_custo_origem_id,
			centro_custo_destino_id, funcionario_id, responsavel_nome, observacoes, data, criado_em, criado_por)
		VALUES ($1, nextval('romaneios_numero_seq'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING numero`
	err := r.q.QueryRow(ctx, query,
		rom.ID, rom.Tipo, rom.Status, rom.RomaneioOrigemID, rom.CentroCustoOrigemID,
		rom.CentroCustoDestinoID, rom.FuncionarioID, rom.ResponsavelNome, rom.Observacoes,
		rom.Data, rom.CriadoEm, rom.CriadoPor,
	).Scan(&rom.Numero)
	if err != nil {
		return fmt.Errorf("insert romaneio: %w", err)
	}

	itemQuery := `
		INSERT INTO romaneio_itens (id, romaneio_id, material_id, quantidade, quantidade_original,
			valor_unitario, numero_serie, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range rom.Itens {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.RomaneioID, item.MaterialID, item.Quantidade, item.QuantidadeOriginal,
			item.ValorUnitario, item.NumeroSerie, item.Observacoes,
		); err != nil {
			return fmt.Errorf("insert item de romaneio: %w", err)
		}
	}
	return nil
}

// GetByID obtém o romaneio com itens. Devolve nil sem erro quando não existe.
func (r *RomaneioRepo) GetByID(id string) (*entity.Romaneio, error) {
	return r.get(`SELECT `+romaneioColunas+` FROM romaneios WHERE id = $1`, id)
}

// GetForUpdate obtém o romaneio bloqueando a linha (SELECT FOR UPDATE) até o
// fim da transação corrente. Itens incluídos.
func (r *RomaneioRepo) GetForUpdate(id string) (*entity.Romaneio, error) {
	return r.get(`SELECT `+romaneioColunas+` FROM romaneios WHERE id = $1 FOR UPDATE`, id)
}

func (r *RomaneioRepo) get(query, id string) (*entity.Romaneio, error) {
	var rom entity.Romaneio
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rom.ID, &rom.Numero, &rom.Tipo, &rom.Status, &rom.RomaneioOrigemID, &rom.CentroCustoOrigemID,
		&rom.CentroCustoDestinoID, &rom.FuncionarioID, &rom.ResponsavelNome, &rom.Observacoes, &rom.Data,
		&rom.CriadoEm, &rom.CriadoPor, &rom.AprovadoEm, &rom.AprovadoPor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get romaneio: %w", err)
	}
	if err := r.carregarItens(&rom); err != nil {
		return nil, err
	}
	return &rom, nil
}

func (r *RomaneioRepo) carregarItens(rom *entity.Romaneio) error {
	query := `
		SELECT id, romaneio_id, material_id, quantidade, quantidade_original,
			valor_unitario, numero_serie, observacoes
		FROM romaneio_itens WHERE romaneio_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, rom.ID)
	if err != nil {
		return fmt.Errorf("list itens de romaneio: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.RomaneioItem
		if err := rows.Scan(
			&item.ID, &item.RomaneioID, &item.MaterialID, &item.Quantidade, &item.QuantidadeOriginal,
			&item.ValorUnitario, &item.NumeroSerie, &item.Observacoes,
		); err != nil {
			return fmt.Errorf("scan item de romaneio: %w", err)
		}
		rom.Itens = append(rom.Itens, item)
	}
	return rows.Err()
}

// UpdateStatus grava a transição de status; aprovado_em/aprovado_por são
// preenchidos apenas na aprovação, um cancelamento não carimba aprovação.
func (r *RomaneioRepo) UpdateStatus(id, status string, usuarioID string) error {
	query := `
		UPDATE romaneios
		SET status = $2,
			aprovado_em = CASE WHEN $2 = $4 THEN now() ELSE aprovado_em END,
			aprovado_por = CASE WHEN $2 = $4 THEN $3 ELSE aprovado_por END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, usuarioID, entity.StatusAprovado)
	if err != nil {
		return fmt.Errorf("update status de romaneio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update status de romaneio: nenhuma linha afetada")
	}
	return nil
}

// ListDevolucoesAprovadasPorOrigem lista as devoluções APROVADAS que
// referenciam a retirada, com itens, na ordem de aprovação.
func (r *RomaneioRepo) ListDevolucoesAprovadasPorOrigem(retiradaID string) ([]*entity.Romaneio, error) {
	query := `
		SELECT ` + romaneioColunas + `
		FROM romaneios
		WHERE romaneio_origem_id = $1 AND tipo = $2 AND status = $3
		ORDER BY aprovado_em`
	return r.list(query, retiradaID, entity.TipoDevolucao, entity.StatusAprovado)
}

// List lista romaneios com filtros opcionais de tipo e status.
func (r *RomaneioRepo) List(tipo, status string, limit, offset int) ([]*entity.Romaneio, error) {
	query := `
		SELECT ` + romaneioColunas + `
		FROM romaneios
		WHERE ($1 = '' OR tipo = $1) AND ($2 = '' OR status = $2)
		ORDER BY numero DESC
		LIMIT $3 OFFSET $4`
	return r.list(query, tipo, status, limit, offset)
}

func (r *RomaneioRepo) list(query string, args ...any) ([]*entity.Romaneio, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list romaneios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Romaneio
	for rows.Next() {
		var rom entity.Romaneio
		if err := rows.Scan(
			&rom.ID, &rom.Numero, &rom.Tipo, &rom.Status, &rom.RomaneioOrigemID, &rom.CentroCustoOrigemID,
			&rom.CentroCustoDestinoID, &rom.FuncionarioID, &rom.ResponsavelNome, &rom.Observacoes, &rom.Data,
			&rom.CriadoEm, &rom.CriadoPor, &rom.AprovadoEm, &rom.AprovadoPor,
		); err != nil {
			return nil, fmt.Errorf("scan romaneio: %w", err)
		}
		out = append(out, &rom)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rom := range out {
		if err := r.carregarItens(rom); err != nil {
			return nil, err
		}
	}
	return out, nil
}
