package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/domain"
)

// respondError traduz a taxonomia de erros de domínio para HTTP num único
// lugar, para que todos os handlers respondam igual:
//
//	não encontrado            → 404
//	transição / já finalizado → 409 (conflito de estado do documento)
//	duplicado / e-mail usado  → 409
//	estoque insuficiente      → 422 (pedido bem formado, estado não permite)
//	entrada inválida          → 400
//	não autorizado            → 401
//	falha de persistência     → 500
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMaterialNaoEncontrado):
		return responder(c, fiber.StatusNotFound, "MATERIAL_NOT_FOUND", err)
	case errors.Is(err, domain.ErrNaoEncontrado):
		return responder(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrJaFinalizado):
		return responder(c, fiber.StatusConflict, "ALREADY_FINALIZED", err)
	case errors.Is(err, domain.ErrTransicaoInvalida):
		return responder(c, fiber.StatusConflict, "INVALID_TRANSITION", err)
	case errors.Is(err, domain.ErrEmailJaCadastrado):
		return responder(c, fiber.StatusConflict, "EMAIL_TAKEN", err)
	case errors.Is(err, domain.ErrDuplicado):
		return responder(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return responder(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrEntradaInvalida):
		return responder(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrNaoAutorizado):
		return responder(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrFalhaPersistencia):
		return responder(c, fiber.StatusInternalServerError, "PERSISTENCE", err)
	default:
		return responder(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func responder(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
