package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/domain"
)

// decodeJSON decodifica el body en dst rechazando campos desconocidos y cuerpos vacíos.
func decodeJSON(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewValidationError("cuerpo de la petición vacío")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.NewValidationError(fmt.Sprintf("campo %q: tipo inválido", typeErr.Field))
		}
		return domain.NewValidationError("JSON inválido: " + err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("JSON inválido: contenido extra después del objeto")
	}
	return nil
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("%s debe ser un entero positivo", name))
	}
	return id, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
