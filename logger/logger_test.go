package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func init() {
	IsTest = true
}

func TestGetLogger(t *testing.T) {
	log := GetLogger()
	assert.NotNil(t, log)
	assert.Same(t, log, GetLogger())
}

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 2, 2))
	assert.Equal(t, "*****", MaskSensitiveString("short", 2, 2))
	assert.Equal(t, "se...23", MaskSensitiveString("secret-value-123", 2, 2))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "***@example.com", MaskEmail("ann@example.com"))
	assert.Equal(t, "jo...n@example.com", MaskEmail("jonathan@example.com"))
	assert.NotContains(t, MaskEmail("not-an-email"), "not-an-email")
}
