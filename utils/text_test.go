package utils_test

import (
	"testing"

	"github.com/cobraops/cobra-core/utils"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Sí, PAGÓ  ", "si, pago"},
		{"Mañana", "manana"},
		{"DEPÓSITO por 300.00", "deposito por 300.00"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, utils.NormalizeAnswer(tc.in))
	}
}

func TestStripCodeFences(t *testing.T) {
	fenced := "```json\n{\"respuesta\": \"hola\"}\n```"
	assert.Equal(t, `{"respuesta": "hola"}`, utils.StripCodeFences(fenced))

	bare := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, utils.StripCodeFences(bare))

	plain := `{"a": 1}`
	assert.Equal(t, plain, utils.StripCodeFences(plain))
}

func TestContainsAny(t *testing.T) {
	keywords := []string{"pago", "transferencia"}
	assert.True(t, utils.ContainsAny("hice una transferencia ayer", keywords))
	assert.False(t, utils.ContainsAny("no tengo dinero", keywords))
}
