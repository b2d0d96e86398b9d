package utils_test

import (
	"testing"

	"github.com/cobraops/cobra-core/utils"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "51922222222", utils.NormalizePhone("whatsapp:+51922222222"))
	assert.Equal(t, "51922222222", utils.NormalizePhone("+51922222222"))
	assert.Equal(t, "51922222222", utils.NormalizePhone(" 51922222222 "))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "51922222222", utils.SanitizePhone("+51 922-222-222"))
	assert.Equal(t, "51922222222", utils.SanitizePhone("(51) 922.222.222"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, utils.IsNumeric("51922222222"))
	assert.False(t, utils.IsNumeric(""))
	assert.False(t, utils.IsNumeric("922-222"))
	assert.False(t, utils.IsNumeric("no-es-un-numero"))
}
