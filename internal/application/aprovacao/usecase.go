// Package aprovacao implementa a máquina de estados de aprovação de romaneios.
package aprovacao

import (
	"context"
	"fmt"

	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
	domromaneio "github.com/ldonato/almoxarifado-api/internal/domain/romaneio"
)

// UseCase governa o ciclo de vida do romaneio: PENDENTE→APROVADO ou
// PENDENTE→CANCELADO, ambos terminais. A aprovação é one-shot: o status é
// re-checado sob bloqueio de linha dentro da transação, então uma segunda
// chamada concorrente de Aprovar sempre perde com ErrTransicaoInvalida e não
// gera nenhum lançamento.
type UseCase struct {
	txRunner     estoque.TxRunner
	romaneioRepo repository.RomaneioRepository
	validador    *estoque.Validador
	aplicador    *estoque.Aplicador
}

// NewUseCase constrói o caso de uso de aprovação.
func NewUseCase(
	txRunner estoque.TxRunner,
	romaneioRepo repository.RomaneioRepository,
	validador *estoque.Validador,
	aplicador *estoque.Aplicador,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		romaneioRepo: romaneioRepo,
		validador:    validador,
		aplicador:    aplicador,
	}
}

// Aprovar aprova um romaneio pendente em nome do usuário informado:
//  1. carrega o documento com itens (ErrNaoEncontrado se ausente);
//  2. rejeita status não pendente (ErrTransicaoInvalida);
//  3. devolução: rejeita se a retirada de origem já foi totalmente devolvida
//     (ErrJaFinalizado, guarda contra reenvio da mesma devolução);
//  4. retirada: roda o Validador sobre todos os itens e aborta sem efeitos
//     colaterais com a mensagem agregada;
//  5. monta os deltas por item (ponto único de despacho por tipo);
//  6. dentro da transação, re-checa o status sob bloqueio, aplica o lote e
//     transiciona para APROVADO. Em falha do aplicador o documento permanece
//     PENDENTE e o estoque fica intacto.
func (uc *UseCase) Aprovar(ctx context.Context, romaneioID, usuarioID string) error {
	if romaneioID == "" || usuarioID == "" {
		return fmt.Errorf("%w: romaneio e usuário são obrigatórios", domain.ErrEntradaInvalida)
	}

	rom, err := uc.romaneioRepo.GetByID(romaneioID)
	if err != nil {
		return fmt.Errorf("%w: carregar romaneio: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom == nil {
		return fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, romaneioID)
	}
	if rom.Status != entity.StatusPendente {
		return fmt.Errorf("%w: romaneio %d está %s", domain.ErrTransicaoInvalida, rom.Numero, rom.Status)
	}
	if len(rom.Itens) == 0 {
		return fmt.Errorf("%w: romaneio sem itens", domain.ErrEntradaInvalida)
	}

	if rom.Tipo == entity.TipoDevolucao {
		if err := uc.checarDevolucaoPendente(rom); err != nil {
			return err
		}
	}

	if rom.Tipo == entity.TipoRetirada {
		itens := make([]estoque.ItemValidacao, 0, len(rom.Itens))
		for _, item := range rom.Itens {
			itens = append(itens, estoque.ItemValidacao{MaterialID: item.MaterialID, Quantidade: item.Quantidade})
		}
		resultado, err := uc.validador.Validar(ctx, itens)
		if err != nil {
			return err
		}
		if !resultado.Valido {
			return erroValidacao(resultado)
		}
	}

	deltas := uc.montarDeltas(rom, usuarioID)

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimentacaoRepository,
		materialRepo repository.MaterialRepository,
		romaneioRepo repository.RomaneioRepository,
	) error {
		// Re-checagem do status sob SELECT FOR UPDATE: garante o one-shot
		// mesmo com duas aprovações disparadas ao mesmo tempo.
		atual, err := romaneioRepo.GetForUpdate(rom.ID)
		if err != nil {
			return fmt.Errorf("%w: bloquear romaneio: %v", domain.ErrFalhaPersistencia, err)
		}
		if atual == nil {
			return fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, rom.ID)
		}
		if atual.Status != entity.StatusPendente {
			return fmt.Errorf("%w: romaneio %d está %s", domain.ErrTransicaoInvalida, atual.Numero, atual.Status)
		}
		if err := uc.aplicador.AplicarTodos(movRepo, materialRepo, deltas); err != nil {
			return err
		}
		if err := romaneioRepo.UpdateStatus(rom.ID, entity.StatusAprovado, usuarioID); err != nil {
			return fmt.Errorf("%w: gravar status: %v", domain.ErrFalhaPersistencia, err)
		}
		return nil
	})
}

// Cancelar cancela um romaneio pendente. Não gera lançamentos no razão.
func (uc *UseCase) Cancelar(ctx context.Context, romaneioID, usuarioID string) error {
	if romaneioID == "" || usuarioID == "" {
		return fmt.Errorf("%w: romaneio e usuário são obrigatórios", domain.ErrEntradaInvalida)
	}

	rom, err := uc.romaneioRepo.GetByID(romaneioID)
	if err != nil {
		return fmt.Errorf("%w: carregar romaneio: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom == nil {
		return fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, romaneioID)
	}
	if rom.Status != entity.StatusPendente {
		return fmt.Errorf("%w: romaneio %d está %s", domain.ErrTransicaoInvalida, rom.Numero, rom.Status)
	}

	return uc.txRunner.Run(ctx, func(
		_ repository.MovimentacaoRepository,
		_ repository.MaterialRepository,
		romaneioRepo repository.RomaneioRepository,
	) error {
		atual, err := romaneioRepo.GetForUpdate(rom.ID)
		if err != nil {
			return fmt.Errorf("%w: bloquear romaneio: %v", domain.ErrFalhaPersistencia, err)
		}
		if atual == nil {
			return fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, rom.ID)
		}
		if atual.Status != entity.StatusPendente {
			return fmt.Errorf("%w: romaneio %d está %s", domain.ErrTransicaoInvalida, atual.Numero, atual.Status)
		}
		if err := romaneioRepo.UpdateStatus(rom.ID, entity.StatusCancelado, usuarioID); err != nil {
			return fmt.Errorf("%w: gravar status: %v", domain.ErrFalhaPersistencia, err)
		}
		return nil
	})
}

// checarDevolucaoPendente rejeita a aprovação de uma devolução cuja retirada
// de origem já está totalmente devolvida (reenvio duplicado).
func (uc *UseCase) checarDevolucaoPendente(rom *entity.Romaneio) error {
	if rom.RomaneioOrigemID == nil {
		// Devolução sem origem: aceita, entra como retorno avulso ao estoque.
		return nil
	}
	origem, err := uc.romaneioRepo.GetByID(*rom.RomaneioOrigemID)
	if err != nil {
		return fmt.Errorf("%w: carregar retirada de origem: %v", domain.ErrFalhaPersistencia, err)
	}
	if origem == nil {
		return fmt.Errorf("%w: retirada de origem %s", domain.ErrNaoEncontrado, *rom.RomaneioOrigemID)
	}
	if origem.Status != entity.StatusAprovado {
		return fmt.Errorf("%w: retirada de origem %d está %s", domain.ErrTransicaoInvalida, origem.Numero, origem.Status)
	}
	devolucoes, err := uc.romaneioRepo.ListDevolucoesAprovadasPorOrigem(origem.ID)
	if err != nil {
		return fmt.Errorf("%w: listar devoluções: %v", domain.ErrFalhaPersistencia, err)
	}
	status := domromaneio.CalcularStatusDevolucao(origem, devolucoes)
	if status.Situacao == domromaneio.SituacaoTotalmenteDevolvido {
		return fmt.Errorf("%w: retirada %d já totalmente devolvida", domain.ErrJaFinalizado, origem.Numero)
	}
	return nil
}

// montarDeltas é o ponto único de despacho por tipo de romaneio:
// retirada → delta negativo; devolução e transferência → delta positivo
// (a transferência é modelada como realocação de uma só perna, não como par
// saída/entrada). Todos os tipos realocam o material para o centro de custo
// de destino do documento.
func (uc *UseCase) montarDeltas(rom *entity.Romaneio, usuarioID string) []estoque.Delta {
	motivo := entity.MotivoRetirada
	sinal := int64(-1)
	switch rom.Tipo {
	case entity.TipoDevolucao:
		motivo = entity.MotivoDevolucao
		sinal = 1
	case entity.TipoTransferencia:
		motivo = entity.MotivoTransferencia
		sinal = 1
	}

	destino := rom.CentroCustoDestinoID
	deltas := make([]estoque.Delta, 0, len(rom.Itens))
	for _, item := range rom.Itens {
		deltas = append(deltas, estoque.Delta{
			MaterialID:        item.MaterialID,
			Quantidade:        sinal * item.Quantidade,
			Motivo:            motivo,
			RomaneioID:        &rom.ID,
			NovoCentroCustoID: &destino,
			UsuarioID:         usuarioID,
		})
	}
	return deltas
}

// erroValidacao converte o resultado reprovado do Validador num erro da
// taxonomia de domínio carregando a mensagem agregada (todas as linhas).
func erroValidacao(r *estoque.ResultadoValidacao) error {
	base := domain.ErrEstoqueInsuficiente
	for _, f := range r.Falhas {
		switch f.Motivo {
		case estoque.FalhaNaoEncontrado:
			base = domain.ErrMaterialNaoEncontrado
		case estoque.FalhaQuantidadeInvalida:
			base = domain.ErrEntradaInvalida
		}
	}
	return fmt.Errorf("%w:\n%s", base, r.Mensagem())
}
