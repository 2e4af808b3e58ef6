package aprovacao_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória. O fakeTxRunner serializa as "transações" com um mutex,
// emulando o bloqueio de linha do banco para os testes de concorrência.
// ──────────────────────────────────────────────────────────────────────────────

type fakeMaterialRepo struct {
	mu        sync.Mutex
	materiais map[string]*entity.Material
}

func newFakeMaterialRepo(materiais ...*entity.Material) *fakeMaterialRepo {
	r := &fakeMaterialRepo{materiais: make(map[string]*entity.Material)}
	for _, m := range materiais {
		cp := *m
		r.materiais[m.ID] = &cp
	}
	return r
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.materiais[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiais[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetByCodigo(codigo string) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.materiais {
		if m.Codigo == codigo {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) List(string, bool, int, int) ([]*entity.Material, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.materiais[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *fakeMaterialRepo) UpdateQuantidade(id string, quantidade int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiais[id]
	if !ok {
		return fmt.Errorf("material %s não existe", id)
	}
	m.Quantidade = quantidade
	return nil
}

func (r *fakeMaterialRepo) UpdateCentroCusto(id string, centroCustoID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiais[id]
	if !ok {
		return fmt.Errorf("material %s não existe", id)
	}
	m.CentroCustoID = centroCustoID
	return nil
}

func (r *fakeMaterialRepo) quantidade(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materiais[id].Quantidade
}

func (r *fakeMaterialRepo) centroCusto(id string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materiais[id].CentroCustoID
}

type fakeMovRepo struct {
	mu           sync.Mutex
	movimentacao []*entity.Movimentacao
}

func (r *fakeMovRepo) Create(mov *entity.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *mov
	r.movimentacao = append(r.movimentacao, &cp)
	return nil
}

func (r *fakeMovRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Movimentacao, error) {
	return nil, nil
}

func (r *fakeMovRepo) ListByRomaneio(romaneioID string) ([]*entity.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movimentacao
	for _, m := range r.movimentacao {
		if m.RomaneioID != nil && *m.RomaneioID == romaneioID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movimentacao)
}

type fakeRomaneioRepo struct {
	mu        sync.Mutex
	romaneios map[string]*entity.Romaneio
}

func newFakeRomaneioRepo(romaneios ...*entity.Romaneio) *fakeRomaneioRepo {
	r := &fakeRomaneioRepo{romaneios: make(map[string]*entity.Romaneio)}
	for _, rom := range romaneios {
		cp := *rom
		r.romaneios[rom.ID] = &cp
	}
	return r
}

func (r *fakeRomaneioRepo) Create(rom *entity.Romaneio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rom
	r.romaneios[rom.ID] = &cp
	return nil
}

func (r *fakeRomaneioRepo) GetByID(id string) (*entity.Romaneio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rom, ok := r.romaneios[id]
	if !ok {
		return nil, nil
	}
	cp := *rom
	return &cp, nil
}

func (r *fakeRomaneioRepo) GetForUpdate(id string) (*entity.Romaneio, error) {
	return r.GetByID(id)
}

func (r *fakeRomaneioRepo) UpdateStatus(id, status, usuarioID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rom, ok := r.romaneios[id]
	if !ok {
		return fmt.Errorf("romaneio %s não existe", id)
	}
	rom.Status = status
	if status == entity.StatusAprovado {
		now := time.Now()
		rom.AprovadoEm = &now
		rom.AprovadoPor = &usuarioID
	}
	return nil
}

func (r *fakeRomaneioRepo) ListDevolucoesAprovadasPorOrigem(retiradaID string) ([]*entity.Romaneio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Romaneio
	for _, rom := range r.romaneios {
		if rom.Tipo == entity.TipoDevolucao && rom.Status == entity.StatusAprovado &&
			rom.RomaneioOrigemID != nil && *rom.RomaneioOrigemID == retiradaID {
			cp := *rom
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRomaneioRepo) List(string, string, int, int) ([]*entity.Romaneio, error) {
	return nil, nil
}

func (r *fakeRomaneioRepo) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.romaneios[id].Status
}

func (r *fakeRomaneioRepo) aprovacao(id string) (*time.Time, *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rom := r.romaneios[id]
	return rom.AprovadoEm, rom.AprovadoPor
}

// fakeTxRunner entrega sempre os mesmos repositórios e serializa os lotes:
// duas transações concorrentes nunca rodam ao mesmo tempo, como aconteceria
// no banco com as linhas bloqueadas por SELECT FOR UPDATE.
type fakeTxRunner struct {
	mu      sync.Mutex
	movRepo *fakeMovRepo
	matRepo *fakeMaterialRepo
	romRepo *fakeRomaneioRepo
}

var _ estoque.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.MovimentacaoRepository,
	repository.MaterialRepository,
	repository.RomaneioRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.movRepo, f.matRepo, f.romRepo)
}
