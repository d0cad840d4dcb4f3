package payroll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksUTF8(t *testing.T) {
	assert.True(t, looksUTF8([]byte("id,rfc,name\n1,NUNE900101AB1,José Núñez\n")))
	assert.True(t, looksUTF8(nil))

	// "é" (0xC3 0xA9) cortada por el límite del bloque.
	cut := []byte(strings.Repeat("a", 10) + "\xc3")
	assert.True(t, looksUTF8(cut))

	// Windows-1252: "é" es 0xE9 seguido de ASCII.
	assert.False(t, looksUTF8([]byte("Jos\xe9 N\xfa\xf1ez\n")))
}
