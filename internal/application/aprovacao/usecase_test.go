package aprovacao_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldonato/almoxarifado-api/internal/application/aprovacao"
	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Montagem
// ──────────────────────────────────────────────────────────────────────────────

type cenario struct {
	uc      *aprovacao.UseCase
	matRepo *fakeMaterialRepo
	movRepo *fakeMovRepo
	romRepo *fakeRomaneioRepo
}

func montar(materiais []*entity.Material, romaneios ...*entity.Romaneio) *cenario {
	matRepo := newFakeMaterialRepo(materiais...)
	movRepo := &fakeMovRepo{}
	romRepo := newFakeRomaneioRepo(romaneios...)
	tx := &fakeTxRunner{movRepo: movRepo, matRepo: matRepo, romRepo: romRepo}
	return &cenario{
		uc:      aprovacao.NewUseCase(tx, romRepo, estoque.NewValidador(matRepo), estoque.NewAplicador()),
		matRepo: matRepo,
		movRepo: movRepo,
		romRepo: romRepo,
	}
}

func material(id, codigo string, qtd int64) *entity.Material {
	return &entity.Material{ID: id, Codigo: codigo, Nome: "Material " + codigo, Quantidade: qtd, Ativo: true}
}

func romaneioPendente(id string, tipo string, itens ...entity.RomaneioItem) *entity.Romaneio {
	return &entity.Romaneio{
		ID:                   id,
		Numero:               42,
		Tipo:                 tipo,
		Status:               entity.StatusPendente,
		CentroCustoOrigemID:  "cc-almox",
		CentroCustoDestinoID: "cc-obra",
		Itens:                itens,
	}
}

func itemDe(materialID string, qtd int64) entity.RomaneioItem {
	return entity.RomaneioItem{MaterialID: materialID, Quantidade: qtd}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprovar retirada
// ──────────────────────────────────────────────────────────────────────────────

// Retirada com estoque suficiente: quantidades decrescem, um lançamento
// negativo por item entra no razão e o documento vira APROVADO.
func TestAprovar_RetiradaComEstoque(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10), material("mat-b", "B01", 5)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 4), itemDe("mat-b", 5)),
	)

	err := c.uc.Aprovar(context.Background(), "rom-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusAprovado, c.romRepo.status("rom-1"))
	assert.Equal(t, int64(6), c.matRepo.quantidade("mat-a"))
	assert.Equal(t, int64(0), c.matRepo.quantidade("mat-b"))

	em, por := c.romRepo.aprovacao("rom-1")
	require.NotNil(t, em, "aprovação carimbada")
	require.NotNil(t, por)
	assert.Equal(t, "user-1", *por)

	movs, _ := c.movRepo.ListByRomaneio("rom-1")
	require.Len(t, movs, 2)
	assert.Equal(t, int64(-4), movs[0].Delta)
	assert.Equal(t, int64(-5), movs[1].Delta)
	assert.Equal(t, entity.MotivoRetirada, movs[0].Motivo)
}

// A retirada realoca os materiais para o centro de custo de destino.
func TestAprovar_RetiradaRealocaCentroCusto(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 1)),
	)

	require.NoError(t, c.uc.Aprovar(context.Background(), "rom-1", "user-1"))

	require.NotNil(t, c.matRepo.centroCusto("mat-a"))
	assert.Equal(t, "cc-obra", *c.matRepo.centroCusto("mat-a"))
}

// Estoque insuficiente: o erro carrega TODAS as linhas reprovadas, o documento
// segue PENDENTE e nada muda no estoque nem no razão.
func TestAprovar_RetiradaSemEstoqueAbortaSemEfeitos(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 2), material("mat-b", "B01", 1)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 5), itemDe("mat-b", 3)),
	)

	err := c.uc.Aprovar(context.Background(), "rom-1", "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
	assert.Contains(t, err.Error(), "A01", "primeira falha na mensagem")
	assert.Contains(t, err.Error(), "B01", "segunda falha na mensagem")

	assert.Equal(t, entity.StatusPendente, c.romRepo.status("rom-1"))
	assert.Equal(t, int64(2), c.matRepo.quantidade("mat-a"))
	assert.Equal(t, int64(1), c.matRepo.quantidade("mat-b"))
	assert.Zero(t, c.movRepo.total())
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprovar devolução e transferência
// ──────────────────────────────────────────────────────────────────────────────

// Devolução: delta positivo, estoque cresce.
func TestAprovar_DevolucaoIncrementaEstoque(t *testing.T) {
	origem := "ret-1"
	dev := romaneioPendente("dev-1", entity.TipoDevolucao, itemDe("mat-a", 3))
	dev.RomaneioOrigemID = &origem
	retirada := &entity.Romaneio{
		ID:     origem,
		Numero: 41,
		Tipo:   entity.TipoRetirada,
		Status: entity.StatusAprovado,
		Itens:  []entity.RomaneioItem{itemDe("mat-a", 10)},
	}
	c := montar([]*entity.Material{material("mat-a", "A01", 2)}, dev, retirada)

	err := c.uc.Aprovar(context.Background(), "dev-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), c.matRepo.quantidade("mat-a"))

	movs, _ := c.movRepo.ListByRomaneio("dev-1")
	require.Len(t, movs, 1)
	assert.Equal(t, int64(3), movs[0].Delta)
	assert.Equal(t, entity.MotivoDevolucao, movs[0].Motivo)
}

// Devolução cuja retirada de origem já foi totalmente devolvida: rejeitada
// com ErrJaFinalizado, sem efeitos.
func TestAprovar_DevolucaoDeRetiradaJaFinalizada(t *testing.T) {
	origem := "ret-1"
	retirada := &entity.Romaneio{
		ID:     origem,
		Numero: 41,
		Tipo:   entity.TipoRetirada,
		Status: entity.StatusAprovado,
		Itens:  []entity.RomaneioItem{itemDe("mat-a", 5)},
	}
	devAprovada := &entity.Romaneio{
		ID:               "dev-0",
		Tipo:             entity.TipoDevolucao,
		Status:           entity.StatusAprovado,
		RomaneioOrigemID: &origem,
		Itens:            []entity.RomaneioItem{itemDe("mat-a", 5)},
	}
	devNova := romaneioPendente("dev-1", entity.TipoDevolucao, itemDe("mat-a", 1))
	devNova.RomaneioOrigemID = &origem

	c := montar([]*entity.Material{material("mat-a", "A01", 10)}, retirada, devAprovada, devNova)

	err := c.uc.Aprovar(context.Background(), "dev-1", "user-1")

	assert.ErrorIs(t, err, domain.ErrJaFinalizado)
	assert.Equal(t, entity.StatusPendente, c.romRepo.status("dev-1"))
	assert.Equal(t, int64(10), c.matRepo.quantidade("mat-a"))
	assert.Zero(t, c.movRepo.total())
}

// Transferência: realocação de uma só perna, delta positivo e centro de
// custo trocado para o destino.
func TestAprovar_TransferenciaRealoca(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoTransferencia, itemDe("mat-a", 2)),
	)

	err := c.uc.Aprovar(context.Background(), "rom-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(12), c.matRepo.quantidade("mat-a"))
	require.NotNil(t, c.matRepo.centroCusto("mat-a"))
	assert.Equal(t, "cc-obra", *c.matRepo.centroCusto("mat-a"))

	movs, _ := c.movRepo.ListByRomaneio("rom-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MotivoTransferencia, movs[0].Motivo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

// Aprovar de novo um documento já aprovado é transição inválida e não gera
// nenhum lançamento novo (one-shot).
func TestAprovar_SegundaVezRejeitada(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 2)),
	)
	require.NoError(t, c.uc.Aprovar(context.Background(), "rom-1", "user-1"))
	antes := c.movRepo.total()

	err := c.uc.Aprovar(context.Background(), "rom-1", "user-2")

	assert.ErrorIs(t, err, domain.ErrTransicaoInvalida)
	assert.Equal(t, int64(8), c.matRepo.quantidade("mat-a"), "estoque debitado uma única vez")
	assert.Equal(t, antes, c.movRepo.total(), "nenhum lançamento novo")
}

// Cancelar um pendente: terminal, sem lançamentos.
func TestCancelar_Pendente(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 2)),
	)

	err := c.uc.Cancelar(context.Background(), "rom-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelado, c.romRepo.status("rom-1"))
	assert.Equal(t, int64(10), c.matRepo.quantidade("mat-a"))
	assert.Zero(t, c.movRepo.total())

	em, por := c.romRepo.aprovacao("rom-1")
	assert.Nil(t, em, "cancelamento não carimba aprovação")
	assert.Nil(t, por)
}

// Cancelado é terminal: não dá para aprovar depois.
func TestAprovar_CanceladoRejeitado(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 2)),
	)
	require.NoError(t, c.uc.Cancelar(context.Background(), "rom-1", "user-1"))

	err := c.uc.Aprovar(context.Background(), "rom-1", "user-1")

	assert.ErrorIs(t, err, domain.ErrTransicaoInvalida)
}

// Romaneio inexistente.
func TestAprovar_NaoEncontrado(t *testing.T) {
	c := montar(nil)

	err := c.uc.Aprovar(context.Background(), "rom-x", "user-1")

	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concorrência
// ──────────────────────────────────────────────────────────────────────────────

// Duas aprovações simultâneas do mesmo documento: exatamente uma vence.
// A perdedora falha com ErrTransicaoInvalida na re-checagem sob bloqueio e o
// estoque é debitado uma única vez.
func TestAprovar_ConcorrenteUmaSoVence(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 4)),
	)

	var wg sync.WaitGroup
	erros := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			erros[i] = c.uc.Aprovar(context.Background(), "rom-1", "user-1")
		}(i)
	}
	wg.Wait()

	sucessos := 0
	for _, err := range erros {
		if err == nil {
			sucessos++
		} else {
			assert.ErrorIs(t, err, domain.ErrTransicaoInvalida)
		}
	}
	assert.Equal(t, 1, sucessos, "exatamente uma aprovação vence")
	assert.Equal(t, int64(6), c.matRepo.quantidade("mat-a"), "débito único")
	assert.Equal(t, 1, c.movRepo.total(), "um único lançamento")
	assert.Equal(t, entity.StatusAprovado, c.romRepo.status("rom-1"))
}

// Duas retiradas distintas disputando o mesmo material, com soma acima do
// estoque: a re-checagem defensiva do aplicador derruba a perdedora com
// ErrEstoqueInsuficiente, a quantidade nunca fica negativa e a perdedora
// segue PENDENTE.
func TestAprovar_ConcorrentesDisputandoMesmoMaterial(t *testing.T) {
	c := montar(
		[]*entity.Material{material("mat-a", "A01", 10)},
		romaneioPendente("rom-1", entity.TipoRetirada, itemDe("mat-a", 7)),
		romaneioPendente("rom-2", entity.TipoRetirada, itemDe("mat-a", 7)),
	)

	ids := []string{"rom-1", "rom-2"}
	var wg sync.WaitGroup
	erros := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			erros[i] = c.uc.Aprovar(context.Background(), id, "user-1")
		}(i, id)
	}
	wg.Wait()

	sucessos := 0
	for i, err := range erros {
		if err == nil {
			sucessos++
			assert.Equal(t, entity.StatusAprovado, c.romRepo.status(ids[i]))
		} else {
			assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
			assert.Equal(t, entity.StatusPendente, c.romRepo.status(ids[i]),
				"a perdedora segue pendente")
		}
	}
	assert.Equal(t, 1, sucessos, "exatamente uma retirada vence")
	assert.Equal(t, int64(3), c.matRepo.quantidade("mat-a"), "nunca negativo")
	assert.Equal(t, 1, c.movRepo.total(), "um único débito no razão")
}
