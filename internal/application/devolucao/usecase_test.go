package devolucao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldonato/almoxarifado-api/internal/application/devolucao"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	domromaneio "github.com/ldonato/almoxarifado-api/internal/domain/romaneio"
)

// fakeRomaneioRepo só implementa o que o agregador usa: GetByID e a listagem
// de devoluções aprovadas por origem.
type fakeRomaneioRepo struct {
	romaneios map[string]*entity.Romaneio
}

func newFakeRomaneioRepo(romaneios ...*entity.Romaneio) *fakeRomaneioRepo {
	r := &fakeRomaneioRepo{romaneios: make(map[string]*entity.Romaneio)}
	for _, rom := range romaneios {
		r.romaneios[rom.ID] = rom
	}
	return r
}

func (r *fakeRomaneioRepo) Create(rom *entity.Romaneio) error { return nil }

func (r *fakeRomaneioRepo) GetByID(id string) (*entity.Romaneio, error) {
	return r.romaneios[id], nil
}

func (r *fakeRomaneioRepo) GetForUpdate(id string) (*entity.Romaneio, error) {
	return r.romaneios[id], nil
}

func (r *fakeRomaneioRepo) UpdateStatus(id, status, usuarioID string) error { return nil }

func (r *fakeRomaneioRepo) ListDevolucoesAprovadasPorOrigem(retiradaID string) ([]*entity.Romaneio, error) {
	var out []*entity.Romaneio
	for _, rom := range r.romaneios {
		if rom.Tipo == entity.TipoDevolucao && rom.Status == entity.StatusAprovado &&
			rom.RomaneioOrigemID != nil && *rom.RomaneioOrigemID == retiradaID {
			out = append(out, rom)
		}
	}
	return out, nil
}

func (r *fakeRomaneioRepo) List(string, string, int, int) ([]*entity.Romaneio, error) {
	return nil, nil
}

func retiradaAprovada(id string, itens ...entity.RomaneioItem) *entity.Romaneio {
	return &entity.Romaneio{
		ID:     id,
		Numero: 7,
		Tipo:   entity.TipoRetirada,
		Status: entity.StatusAprovado,
		Itens:  itens,
	}
}

func devolucaoDe(id, origemID, status string, itens ...entity.RomaneioItem) *entity.Romaneio {
	return &entity.Romaneio{
		ID:               id,
		Tipo:             entity.TipoDevolucao,
		Status:           status,
		RomaneioOrigemID: &origemID,
		Itens:            itens,
	}
}

func itemDe(materialID string, qtd int64) entity.RomaneioItem {
	return entity.RomaneioItem{MaterialID: materialID, Quantidade: qtd}
}

// ──────────────────────────────────────────────────────────────────────────────
// StatusDevolucao
// ──────────────────────────────────────────────────────────────────────────────

// Apenas devoluções APROVADAS entram no agregado: as pendentes e canceladas
// que referenciam a mesma retirada são ignoradas.
func TestStatusDevolucao_SoDevolucoesAprovadasContam(t *testing.T) {
	repo := newFakeRomaneioRepo(
		retiradaAprovada("ret-1", itemDe("mat-a", 10)),
		devolucaoDe("dev-1", "ret-1", entity.StatusAprovado, itemDe("mat-a", 3)),
		devolucaoDe("dev-2", "ret-1", entity.StatusPendente, itemDe("mat-a", 5)),
		devolucaoDe("dev-3", "ret-1", entity.StatusCancelado, itemDe("mat-a", 2)),
	)
	uc := devolucao.NewUseCase(repo)

	status, err := uc.StatusDevolucao(context.Background(), "ret-1")

	require.NoError(t, err)
	assert.Equal(t, domromaneio.SituacaoParcialmenteDevolvido, status.Situacao)
	assert.Equal(t, int64(3), status.TotalDevolvido, "pendente e cancelada não contam")
	assert.Equal(t, 30.0, status.Percentual)
}

// Várias devoluções aprovadas somam por material até o total.
func TestStatusDevolucao_SomaVariasDevolucoes(t *testing.T) {
	repo := newFakeRomaneioRepo(
		retiradaAprovada("ret-1", itemDe("mat-a", 6), itemDe("mat-b", 4)),
		devolucaoDe("dev-1", "ret-1", entity.StatusAprovado, itemDe("mat-a", 6)),
		devolucaoDe("dev-2", "ret-1", entity.StatusAprovado, itemDe("mat-b", 4)),
	)
	uc := devolucao.NewUseCase(repo)

	status, err := uc.StatusDevolucao(context.Background(), "ret-1")

	require.NoError(t, err)
	assert.Equal(t, domromaneio.SituacaoTotalmenteDevolvido, status.Situacao)
	assert.Equal(t, int64(10), status.TotalOriginal)
	assert.Equal(t, int64(10), status.TotalDevolvido)
}

// Derivado e nunca persistido: duas consultas seguidas devolvem o mesmo
// agregado sem alterar nada.
func TestStatusDevolucao_Idempotente(t *testing.T) {
	repo := newFakeRomaneioRepo(
		retiradaAprovada("ret-1", itemDe("mat-a", 10)),
		devolucaoDe("dev-1", "ret-1", entity.StatusAprovado, itemDe("mat-a", 4)),
	)
	uc := devolucao.NewUseCase(repo)

	s1, err1 := uc.StatusDevolucao(context.Background(), "ret-1")
	s2, err2 := uc.StatusDevolucao(context.Background(), "ret-1")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2)
}

// Retirada inexistente.
func TestStatusDevolucao_NaoEncontrado(t *testing.T) {
	uc := devolucao.NewUseCase(newFakeRomaneioRepo())

	_, err := uc.StatusDevolucao(context.Background(), "ret-x")

	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

// O documento precisa ser uma retirada.
func TestStatusDevolucao_TipoErrado(t *testing.T) {
	dev := devolucaoDe("dev-1", "ret-1", entity.StatusAprovado, itemDe("mat-a", 1))
	uc := devolucao.NewUseCase(newFakeRomaneioRepo(dev))

	_, err := uc.StatusDevolucao(context.Background(), "dev-1")

	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// A retirada precisa estar APROVADA: pendente ainda não movimentou estoque.
func TestStatusDevolucao_RetiradaPendente(t *testing.T) {
	ret := retiradaAprovada("ret-1", itemDe("mat-a", 1))
	ret.Status = entity.StatusPendente
	uc := devolucao.NewUseCase(newFakeRomaneioRepo(ret))

	_, err := uc.StatusDevolucao(context.Background(), "ret-1")

	assert.ErrorIs(t, err, domain.ErrTransicaoInvalida)
}
