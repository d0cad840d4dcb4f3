package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartstock-api/internal/domain/account"
)

func ptr(s string) *string { return &s }

func TestValidate_AltaCompleta(t *testing.T) {
	errs := account.Validate(account.Fields{
		Name:     ptr("Grupo Industrial"),
		RFC:      ptr("GIN010203AB1"),
		Email:    ptr("compras@grupo.mx"),
		Phone:    ptr("(55) 1234-5678"),
		Password: ptr("secreto1"),
	}, true)
	assert.Empty(t, errs)
}

func TestValidate_AltaSinCampos(t *testing.T) {
	errs := account.Validate(account.Fields{}, true)
	assert.Len(t, errs, 4, "nombre, RFC, email y contraseña son obligatorios")
}

func TestValidate_ActualizacionParcial(t *testing.T) {
	assert.Empty(t, account.Validate(account.Fields{Email: ptr("nuevo@correo.com")}, false))

	errs := account.Validate(account.Fields{RFC: ptr("abc123"), Phone: ptr("123")}, false)
	assert.Len(t, errs, 2)
}

func TestValidPhone(t *testing.T) {
	assert.True(t, account.ValidPhone("55 1234 5678"))
	assert.False(t, account.ValidPhone("+52 55 1234 5678"), "el signo + no es un dígito")
	assert.False(t, account.ValidPhone("555-1234"))
}
