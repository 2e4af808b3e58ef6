package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/application/usecase"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// MaterialHandler trata o catálogo de materiais (protegido).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler constrói o handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar material
// @Tags         materiais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarMaterialRequest  true  "codigo, nome, valor_unitario e centro_custo_id opcionais"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materiais [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mat, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(mat))
}

// Update godoc
// @Summary      Atualizar material (nome, valor, ativo; nunca quantidade)
// @Tags         materiais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do material"
// @Param        body  body  dto.AtualizarMaterialRequest  true  "campos editáveis"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materiais/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.AtualizarMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mat, err := h.uc.Atualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMaterialResponse(mat))
}

// GetByID godoc
// @Summary      Consultar material
// @Tags         materiais
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materiais/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	mat, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMaterialResponse(mat))
}

// List godoc
// @Summary      Listar materiais
// @Description  busca é normalizada (sem acentos, minúsculas) e casa nome ou código.
// @Tags         materiais
// @Security     Bearer
// @Produce      json
// @Param        busca   query  string  false  "termo de busca"
// @Param        ativos  query  bool    false  "apenas ativos"
// @Param        limit   query  int     false  "padrão 20"
// @Param        offset  query  int     false  "padrão 0"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materiais [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	materiais, err := h.uc.Listar(c.Context(), c.Query("busca"), c.QueryBool("ativos"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MaterialResponse, 0, len(materiais))
	for _, mat := range materiais {
		out = append(out, toMaterialResponse(mat))
	}
	return c.JSON(out)
}

func toMaterialResponse(mat *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:            mat.ID,
		Codigo:        mat.Codigo,
		Nome:          mat.Nome,
		Quantidade:    mat.Quantidade,
		ValorUnitario: mat.ValorUnitario,
		Ativo:         mat.Ativo,
		CentroCustoID: mat.CentroCustoID,
	}
}
