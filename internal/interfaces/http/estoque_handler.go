package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// EstoqueHandler trata a validação de estoque e as consultas ao razão de
// movimentações (protegido).
type EstoqueHandler struct {
	validador *estoque.Validador
	consulta  *estoque.Consulta
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(validador *estoque.Validador, consulta *estoque.Consulta) *EstoqueHandler {
	return &EstoqueHandler{validador: validador, consulta: consulta}
}

// Validar godoc
// @Summary      Validar disponibilidade de estoque (somente leitura)
// @Description  Verifica todos os itens e devolve todas as falhas de uma vez,
// @Description  nunca apenas a primeira. Não altera nada.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidarEstoqueRequest  true  "itens a validar"
// @Success      200   {object}  dto.ValidarEstoqueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estoque/validar [post]
func (h *EstoqueHandler) Validar(c *fiber.Ctx) error {
	var in dto.ValidarEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	itens := make([]estoque.ItemValidacao, 0, len(in.Itens))
	for _, item := range in.Itens {
		itens = append(itens, estoque.ItemValidacao{MaterialID: item.MaterialID, Quantidade: item.Quantidade})
	}
	resultado, err := h.validador.Validar(c.Context(), itens)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ValidarEstoqueResponse{
		Valido:      resultado.Valido,
		Mensagem:    resultado.Mensagem(),
		Disponiveis: resultado.Disponiveis,
	}
	for _, f := range resultado.Falhas {
		out.Falhas = append(out.Falhas, dto.FalhaValidacaoDTO{
			MaterialID: f.MaterialID,
			Codigo:     f.Codigo,
			Nome:       f.Nome,
			Motivo:     f.Motivo,
			Solicitada: f.Solicitada,
			Disponivel: f.Disponivel,
			Faltante:   f.Faltante,
		})
	}
	return c.JSON(out)
}

// MovimentacoesPorMaterial godoc
// @Summary      Razão de movimentações de um material (mais recentes primeiro)
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do material"
// @Param        limit   query  int     false  "padrão 20"
// @Param        offset  query  int     false  "padrão 0"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/estoque/materiais/{id}/movimentacoes [get]
func (h *EstoqueHandler) MovimentacoesPorMaterial(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	movs, err := h.consulta.PorMaterial(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovimentacaoResponses(movs))
}

// MovimentacoesPorRomaneio godoc
// @Summary      Lançamentos gerados por um romaneio, na ordem de gravação
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do romaneio"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/estoque/romaneios/{id}/movimentacoes [get]
func (h *EstoqueHandler) MovimentacoesPorRomaneio(c *fiber.Ctx) error {
	movs, err := h.consulta.PorRomaneio(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovimentacaoResponses(movs))
}

func toMovimentacaoResponses(movs []*entity.Movimentacao) []dto.MovimentacaoResponse {
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, mov := range movs {
		out = append(out, dto.MovimentacaoResponse{
			ID:                  mov.ID,
			MaterialID:          mov.MaterialID,
			Delta:               mov.Delta,
			QuantidadeAnterior:  mov.QuantidadeAnterior,
			QuantidadePosterior: mov.QuantidadePosterior,
			Motivo:              mov.Motivo,
			RomaneioID:          mov.RomaneioID,
			ReferenciaExterna:   mov.ReferenciaExterna,
			UsuarioID:           mov.UsuarioID,
			CriadoEm:            mov.CriadoEm.Format(time.RFC3339),
		})
	}
	return out
}
