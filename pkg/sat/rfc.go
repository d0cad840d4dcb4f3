// Package sat valida identificadores fiscales mexicanos (RFC) según el formato del SAT.
package sat

import (
	"fmt"
	"regexp"
	"strings"
)

// Longitudes del RFC: persona moral (empresa) 12, persona física 13.
const (
	LenRFCMoral  = 12
	LenRFCFisica = 13
)

var (
	rfcMoralRe  = regexp.MustCompile(`^[A-ZÑ&]{3}[0-9]{6}[A-Z0-9]{3}$`)
	rfcFisicaRe = regexp.MustCompile(`^[A-ZÑ&]{4}[0-9]{6}[A-Z0-9]{3}$`)
)

// NormalizeRFC quita espacios y pasa a mayúsculas.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// ValidateRFCMoral valida el RFC de persona moral (3 letras, fecha AAMMDD, homoclave).
// No normaliza: el RFC de clientes debe llegar ya en mayúsculas.
func ValidateRFCMoral(rfc string) error {
	if !rfcMoralRe.MatchString(rfc) {
		return fmt.Errorf("sat: RFC de persona moral inválido %q (formato: 3 letras + 6 dígitos + 3 caracteres)", rfc)
	}
	return nil
}

// ValidateRFCFisica valida el RFC de persona física (4 letras, fecha AAMMDD, homoclave).
// El valor se normaliza antes de validar; se devuelve la forma normalizada.
func ValidateRFCFisica(rfc string) (string, error) {
	n := NormalizeRFC(rfc)
	if n == "" {
		return "", fmt.Errorf("sat: RFC vacío")
	}
	if !rfcFisicaRe.MatchString(n) {
		return n, fmt.Errorf("sat: formato de RFC inválido (debe ser %d caracteres: 4 letras + 6 dígitos + 3 caracteres)", LenRFCFisica)
	}
	return n, nil
}
