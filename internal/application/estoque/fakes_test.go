package estoque_test

import (
	"fmt"
	"sync"

	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos portos de persistência
// ──────────────────────────────────────────────────────────────────────────────

// fakeMaterialRepo guarda materiais num mapa. O mutex permite os testes de
// concorrência; GetByID/GetForUpdate devolvem cópias para evitar aliasing.
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
	if _, ok := r.materiais[m.ID]; ok {
		return fmt.Errorf("material %s já existe", m.ID)
	}
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

func (r *fakeMaterialRepo) List(busca string, apenasAtivos bool, limit, offset int) ([]*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Material
	for _, m := range r.materiais {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materiais[m.ID]; !ok {
		return fmt.Errorf("material %s não existe", m.ID)
	}
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

// fakeMovRepo acumula lançamentos num slice (razão append-only). Quando
// falhaNaChamada > 0, a chamada de número N a Create falha, simulando o razão
// indisponível no meio de um lote.
type fakeMovRepo struct {
	mu             sync.Mutex
	movimentacao   []*entity.Movimentacao
	falhaNaChamada int
	chamadas       int
}

func newFakeMovRepo() *fakeMovRepo {
	return &fakeMovRepo{}
}

func (r *fakeMovRepo) Create(mov *entity.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chamadas++
	if r.falhaNaChamada > 0 && r.chamadas == r.falhaNaChamada {
		return fmt.Errorf("razão indisponível")
	}
	cp := *mov
	r.movimentacao = append(r.movimentacao, &cp)
	return nil
}

func (r *fakeMovRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movimentacao
	for _, m := range r.movimentacao {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
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

func (r *fakeMovRepo) todos() []*entity.Movimentacao {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Movimentacao, len(r.movimentacao))
	copy(out, r.movimentacao)
	return out
}
