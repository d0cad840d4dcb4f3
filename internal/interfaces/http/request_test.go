package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/domain"
)

type sample struct {
	Quantity int `json:"cantidad"`
}

// decodeStatus ejecuta decodeJSON dentro de una petición real y devuelve el error.
func decodeStatus(t *testing.T, body string) error {
	t.Helper()
	var got error
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var s sample
		got = decodeJSON(c, &s)
		return c.SendStatus(fiber.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req, -1)
	require.NoError(t, err)
	return got
}

func TestDecodeJSON(t *testing.T) {
	assert.NoError(t, decodeStatus(t, `{"cantidad": 3}`))
	assert.NoError(t, decodeStatus(t, "{\"cantidad\": 3}\n"))

	for name, body := range map[string]string{
		"vacío":            "",
		"campo extra":      `{"cantidad": 3, "precio": 10}`,
		"tipo incorrecto":  `{"cantidad": "tres"}`,
		"dos objetos":      `{"cantidad": 1}{"cantidad": 2}`,
		"json mal formado": `{"cantidad": `,
	} {
		t.Run(name, func(t *testing.T) {
			err := decodeStatus(t, body)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	var id int64
	var perr error
	app.Get("/x/:id", func(c *fiber.Ctx) error {
		id, perr = paramID(c, "id")
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/x/42", nil), -1)
	require.NoError(t, err)
	require.NoError(t, perr)
	assert.Equal(t, int64(42), id)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/x/-1", nil), -1)
	require.NoError(t, err)
	assert.ErrorIs(t, perr, domain.ErrInvalidInput)
}
