package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/application/nfe"
)

// NFeHandler trata a importação de NF-e para entrada de estoque (protegido).
type NFeHandler struct {
	uc *nfe.ImportUseCase
}

// NewNFeHandler constrói o handler.
func NewNFeHandler(uc *nfe.ImportUseCase) *NFeHandler {
	return &NFeHandler{uc: uc}
}

// Importar godoc
// @Summary      Importar XML de NF-e (entrada de estoque)
// @Description  Casa cada item da nota com um material pelo código, criando os
// @Description  ausentes com quantidade zero, e registra a entrada pelo razão
// @Description  de movimentações numa única transação.
// @Tags         nfe
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Param        body  body  string  true  "XML da NF-e (nfeProc ou NFe)"
// @Success      200   {object}  nfe.ResultadoImportacao
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/nfe/importar [post]
func (h *NFeHandler) Importar(c *fiber.Ctx) error {
	xml := c.Body()
	if len(xml) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML da NF-e é obrigatório no corpo"})
	}
	resultado, err := h.uc.Importar(c.Context(), GetUserID(c), xml)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resultado)
}
