package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/application/usecase"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// CentroCustoHandler trata os cadastros de centro de custo (protegido).
type CentroCustoHandler struct {
	uc *usecase.CentroCustoUseCase
}

// NewCentroCustoHandler constrói o handler.
func NewCentroCustoHandler(uc *usecase.CentroCustoUseCase) *CentroCustoHandler {
	return &CentroCustoHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar centro de custo
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarCentroCustoRequest  true  "codigo e nome"
// @Success      201   {object}  dto.CentroCustoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/centros-custo [post]
func (h *CentroCustoHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarCentroCustoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cc, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCentroCustoResponse(cc))
}

// GetByID godoc
// @Summary      Consultar centro de custo
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do centro de custo"
// @Success      200  {object}  dto.CentroCustoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/centros-custo/{id} [get]
func (h *CentroCustoHandler) GetByID(c *fiber.Ctx) error {
	cc, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCentroCustoResponse(cc))
}

// List godoc
// @Summary      Listar centros de custo
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        ativos  query  bool  false  "apenas ativos"
// @Success      200  {array}  dto.CentroCustoResponse
// @Router       /api/centros-custo [get]
func (h *CentroCustoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	ccs, err := h.uc.Listar(c.Context(), c.QueryBool("ativos"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CentroCustoResponse, 0, len(ccs))
	for _, cc := range ccs {
		out = append(out, toCentroCustoResponse(cc))
	}
	return c.JSON(out)
}

func toCentroCustoResponse(cc *entity.CentroCusto) dto.CentroCustoResponse {
	return dto.CentroCustoResponse{ID: cc.ID, Codigo: cc.Codigo, Nome: cc.Nome, Ativo: cc.Ativo}
}

// FuncionarioHandler trata os cadastros de funcionário (protegido).
type FuncionarioHandler struct {
	uc *usecase.FuncionarioUseCase
}

// NewFuncionarioHandler constrói o handler.
func NewFuncionarioHandler(uc *usecase.FuncionarioUseCase) *FuncionarioHandler {
	return &FuncionarioHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar funcionário
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarFuncionarioRequest  true  "matricula, nome e cargo opcional"
// @Success      201   {object}  dto.FuncionarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/funcionarios [post]
func (h *FuncionarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarFuncionarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	f, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFuncionarioResponse(f))
}

// GetByID godoc
// @Summary      Consultar funcionário
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do funcionário"
// @Success      200  {object}  dto.FuncionarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/funcionarios/{id} [get]
func (h *FuncionarioHandler) GetByID(c *fiber.Ctx) error {
	f, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toFuncionarioResponse(f))
}

// List godoc
// @Summary      Listar funcionários
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        ativos  query  bool  false  "apenas ativos"
// @Success      200  {array}  dto.FuncionarioResponse
// @Router       /api/funcionarios [get]
func (h *FuncionarioHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	fs, err := h.uc.Listar(c.Context(), c.QueryBool("ativos"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.FuncionarioResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFuncionarioResponse(f))
	}
	return c.JSON(out)
}

func toFuncionarioResponse(f *entity.Funcionario) dto.FuncionarioResponse {
	return dto.FuncionarioResponse{ID: f.ID, Matricula: f.Matricula, Nome: f.Nome, Cargo: f.Cargo, Ativo: f.Ativo}
}
