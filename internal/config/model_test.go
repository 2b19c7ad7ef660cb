package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	m := Default()
	m.Log.Level = "loud"
	m.Import.Workers = 0
	m.Import.Extensions = []string{"step"}

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `log level "loud"`)
	assert.Contains(t, err.Error(), "workers must be at least 1")
	assert.Contains(t, err.Error(), `extension "step" must start with a dot`)
}

func TestClone(t *testing.T) {
	m := Default()
	m.Aliases["A"] = "B"

	c := m.Clone()
	c.Aliases["C"] = "D"
	c.Import.Extensions[0] = ".p21"

	assert.Len(t, m.Aliases, 1)
	assert.Equal(t, ".step", m.Import.Extensions[0])
}
