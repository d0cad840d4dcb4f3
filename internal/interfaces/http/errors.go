package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidInput      = "ENTRADA_INVALIDA"
	CodeNotFound          = "NO_ENCONTRADO"
	CodeInvalidState      = "ESTADO_INVALIDO"
	CodeBusinessRule      = "REGLA_DE_NEGOCIO"
	CodeInsufficientStock = "STOCK_INSUFICIENTE"
	CodeQuotaExceeded     = "EXCEDE_LIMITE_CONTRATO"
	CodeThreshold         = "NO_CUMPLE_MINIMO_90"
	CodeConflict          = "CONFLICTO"
	CodeUnauthorized      = "NO_AUTORIZADO"
	CodeForbidden         = "ACCESO_DENEGADO"
	CodeInternal          = "ERROR_INTERNO"
)

// fail escribe el cuerpo de error correspondiente a err. Los errores sin clasificar se
// registran completos y el cliente solo recibe un mensaje genérico.
func fail(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		threshold *payroll.ThresholdRejection
		stock     *domain.StockError
		quota     *domain.QuotaError
		rule      *domain.RuleViolationError
		state     *domain.StateError
		invalid   *domain.ValidationError
	)
	switch {
	case errors.As(err, &threshold):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeThreshold,
			Message: threshold.Error(),
			Detail:  threshold.Detail(),
		}
	case errors.As(err, &stock):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeInsufficientStock,
			Message: "stock insuficiente",
			Detail: fiber.Map{
				"disponible": stock.Available,
				"solicitado": stock.Requested,
				"faltante":   stock.Shortfall(),
			},
		}
	case errors.As(err, &quota):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeQuotaExceeded,
			Message: "excede el límite del contrato",
			Detail: fiber.Map{
				"tarjetas_maximas":    quota.Max,
				"tarjetas_emitidas":   quota.Issued,
				"tarjetas_restantes":  quota.Remaining(),
				"cantidad_solicitada": quota.Requested,
			},
		}
	case errors.As(err, &rule):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeBusinessRule,
			Message: "pedido no aprobado",
			Reason:  rule.Reason,
		}
	case errors.As(err, &state):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidState, Message: state.Error()}
	case errors.As(err, &invalid):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "errores de validación",
			Errors:  invalid.Errors,
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidInput, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidState, Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInsufficientStock, Message: err.Error()}
	case errors.Is(err, domain.ErrQuotaExceeded):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeQuotaExceeded, Message: err.Error()}
	case errors.Is(err, domain.ErrBusinessRule):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeBusinessRule, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
	}
}

// ErrorHandler para fiber.Config: errores de fiber (404, 405, body demasiado grande) y
// cualquier error devuelto por un handler sin pasar por fail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = CodeInvalidInput
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return fail(c, err)
}

// NotFound responde las rutas no registradas.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Code:    CodeNotFound,
		Message: "ruta no encontrada: " + c.Method() + " " + c.Path(),
	})
}
