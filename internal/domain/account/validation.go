// Package account contiene las reglas de registro y actualización de clientes.
package account

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/smartstock-api/pkg/sat"
)

const (
	MinNameLength     = 3
	MinPhoneDigits    = 10
	MinPasswordLength = 6
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStripRe = regexp.MustCompile(`[\s\-()]`)
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
)

// Fields datos de cliente a validar. Un puntero nil significa "no enviado".
type Fields struct {
	Name     *string
	RFC      *string
	Email    *string
	Phone    *string
	Password *string
}

// Validate devuelve la lista de errores de validación (vacía si todo es correcto).
// Con required=true (alta) nombre, RFC, email y contraseña son obligatorios.
func Validate(f Fields, required bool) []string {
	var errs []string

	if f.Name != nil || required {
		if f.Name == nil || utf8.RuneCountInString(strings.TrimSpace(*f.Name)) < MinNameLength {
			errs = append(errs, "El nombre debe tener al menos 3 caracteres")
		}
	}
	if f.RFC != nil || required {
		if f.RFC == nil || sat.ValidateRFCMoral(*f.RFC) != nil {
			errs = append(errs, "RFC inválido. Formato: 3 letras + 6 dígitos + 3 caracteres (ej: ABC123456XY1)")
		}
	}
	if f.Email != nil || required {
		if f.Email == nil || !emailRe.MatchString(*f.Email) {
			errs = append(errs, "Email inválido")
		}
	}
	// El teléfono es opcional incluso en el alta.
	if f.Phone != nil && *f.Phone != "" {
		if !ValidPhone(*f.Phone) {
			errs = append(errs, "El teléfono debe tener al menos 10 dígitos")
		}
	}
	if f.Password != nil || required {
		if f.Password == nil || len(*f.Password) < MinPasswordLength {
			errs = append(errs, "La contraseña debe tener al menos 6 caracteres")
		}
	}
	return errs
}

// ValidPhone acepta espacios, guiones y paréntesis; exige al menos 10 dígitos.
func ValidPhone(phone string) bool {
	clean := phoneStripRe.ReplaceAllString(phone, "")
	return len(clean) >= MinPhoneDigits && digitsRe.MatchString(clean)
}
