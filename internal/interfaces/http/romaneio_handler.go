package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/aprovacao"
	"github.com/ldonato/almoxarifado-api/internal/application/devolucao"
	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/application/romaneio"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// RomaneioHandler trata o ciclo de vida dos romaneios: criação, consulta,
// aprovação, cancelamento, status de devolução e via impressa (protegido).
type RomaneioHandler struct {
	uc          *romaneio.UseCase
	aprovacaoUC *aprovacao.UseCase
	devolucaoUC *devolucao.UseCase
	pdfUC       *romaneio.PDFUseCase
}

// NewRomaneioHandler constrói o handler.
func NewRomaneioHandler(
	uc *romaneio.UseCase,
	aprovacaoUC *aprovacao.UseCase,
	devolucaoUC *devolucao.UseCase,
	pdfUC *romaneio.PDFUseCase,
) *RomaneioHandler {
	return &RomaneioHandler{uc: uc, aprovacaoUC: aprovacaoUC, devolucaoUC: devolucaoUC, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Criar romaneio (nasce PENDENTE, sem efeito no estoque)
// @Tags         romaneios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarRomaneioRequest  true  "tipo, centros de custo, responsável (funcionário OU nome), itens"
// @Success      201   {object}  dto.RomaneioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/romaneios [post]
func (h *RomaneioHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarRomaneioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	rom, err := h.uc.Criar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRomaneioResponse(rom))
}

// GetByID godoc
// @Summary      Consultar romaneio com itens
// @Tags         romaneios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do romaneio"
// @Success      200  {object}  dto.RomaneioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/romaneios/{id} [get]
func (h *RomaneioHandler) GetByID(c *fiber.Ctx) error {
	rom, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRomaneioResponse(rom))
}

// List godoc
// @Summary      Listar romaneios
// @Tags         romaneios
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  false  "RETIRADA | DEVOLUCAO | TRANSFERENCIA"
// @Param        status  query  string  false  "PENDENTE | APROVADO | CANCELADO"
// @Param        limit   query  int     false  "padrão 20"
// @Param        offset  query  int     false  "padrão 0"
// @Success      200  {array}  dto.RomaneioResponse
// @Router       /api/romaneios [get]
func (h *RomaneioHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	romaneios, err := h.uc.List(c.Context(), c.Query("tipo"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RomaneioResponse, 0, len(romaneios))
	for _, rom := range romaneios {
		out = append(out, toRomaneioResponse(rom))
	}
	return c.JSON(out)
}

// Aprovar godoc
// @Summary      Aprovar romaneio pendente (one-shot, aplica o estoque)
// @Description  Valida o estoque (retiradas), aplica todos os deltas e
// @Description  transiciona para APROVADO numa única transação. Falhou
// @Description  qualquer item, nada muda e o documento segue PENDENTE.
// @Tags         romaneios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do romaneio"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/romaneios/{id}/aprovar [post]
func (h *RomaneioHandler) Aprovar(c *fiber.Ctx) error {
	if err := h.aprovacaoUC.Aprovar(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "romaneio aprovado"})
}

// Cancelar godoc
// @Summary      Cancelar romaneio pendente (sem efeito no estoque)
// @Tags         romaneios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do romaneio"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/romaneios/{id}/cancelar [post]
func (h *RomaneioHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.aprovacaoUC.Cancelar(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "romaneio cancelado"})
}

// Devolucao godoc
// @Summary      Status de devolução de uma retirada (derivado, nunca persistido)
// @Tags         romaneios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da retirada"
// @Success      200  {object}  romaneio.StatusDevolucao
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/romaneios/{id}/devolucao [get]
func (h *RomaneioHandler) Devolucao(c *fiber.Ctx) error {
	status, err := h.devolucaoUC.StatusDevolucao(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// PDF godoc
// @Summary      Via impressa do romaneio em PDF
// @Tags         romaneios
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do romaneio"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/romaneios/{id}/pdf [get]
func (h *RomaneioHandler) PDF(c *fiber.Ctx) error {
	pdf, nome, err := h.pdfUC.Gerar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nome+`"`)
	return c.Send(pdf)
}

func toRomaneioResponse(rom *entity.Romaneio) dto.RomaneioResponse {
	out := dto.RomaneioResponse{
		ID:                   rom.ID,
		Numero:               rom.Numero,
		Tipo:                 rom.Tipo,
		Status:               rom.Status,
		RomaneioOrigemID:     rom.RomaneioOrigemID,
		CentroCustoOrigemID:  rom.CentroCustoOrigemID,
		CentroCustoDestinoID: rom.CentroCustoDestinoID,
		FuncionarioID:        rom.FuncionarioID,
		ResponsavelNome:      rom.ResponsavelNome,
		Observacoes:          rom.Observacoes,
		Data:                 rom.Data,
		CriadoPor:            rom.CriadoPor,
		AprovadoEm:           rom.AprovadoEm,
		AprovadoPor:          rom.AprovadoPor,
		Itens:                make([]dto.RomaneioItemResponse, 0, len(rom.Itens)),
	}
	for _, item := range rom.Itens {
		out.Itens = append(out.Itens, dto.RomaneioItemResponse{
			ID:                 item.ID,
			MaterialID:         item.MaterialID,
			Quantidade:         item.Quantidade,
			QuantidadeOriginal: item.QuantidadeOriginal,
			ValorUnitario:      item.ValorUnitario,
			NumeroSerie:        item.NumeroSerie,
			Observacoes:        item.Observacoes,
		})
	}
	return out
}
