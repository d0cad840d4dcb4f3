package sat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/pkg/sat"
)

func TestValidateRFCMoral(t *testing.T) {
	assert.NoError(t, sat.ValidateRFCMoral("ABC123456XY1"))
	assert.NoError(t, sat.ValidateRFCMoral("Ñ&A010101AB9"))

	assert.Error(t, sat.ValidateRFCMoral("abc123456xy1"), "minúsculas no se aceptan en RFC moral")
	assert.Error(t, sat.ValidateRFCMoral("ABCD123456XY1"), "13 caracteres corresponde a persona física")
	assert.Error(t, sat.ValidateRFCMoral("AB1123456XY1"))
	assert.Error(t, sat.ValidateRFCMoral(""))
}

func TestValidateRFCFisica_NormalizaMayusculas(t *testing.T) {
	rfc, err := sat.ValidateRFCFisica("  gomj800101ab1 ")
	require.NoError(t, err)
	assert.Equal(t, "GOMJ800101AB1", rfc)
}

func TestValidateRFCFisica_Invalidos(t *testing.T) {
	cases := []string{"", "GOM800101AB1", "GOMJ800101AB", "GOMJ80010AAB1", "GOMJ800101AB1X"}
	for _, c := range cases {
		_, err := sat.ValidateRFCFisica(c)
		assert.Error(t, err, "RFC %q debe ser inválido", c)
	}
}
