package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/hstt/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	file := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(file, []byte(content), 0666))
	return file
}

func TestLoadJson(t *testing.T) {
	//** Arrange
	file := write(t, "search.json", `{
		"mode": "sa",
		"timeLimit": 2.5,
		"seed": 42,
		"tempIni": 20,
		"weights": {"swap": 2, "kempe": 0.5}
	}`)

	//** Act
	config, err := Load(file)

	//** Assert
	require.Nil(t, err)
	assert.Equal(t, search.ModeSA, config.Mode)
	assert.Equal(t, 2.5, config.TimeLimit)
	assert.Equal(t, uint64(42), config.Seed)
	assert.Equal(t, 20.0, config.TempIni)
	assert.Equal(t, map[string]float64{"swap": 2, "kempe": 0.5}, config.Weights)
	// Untouched keys keep their defaults
	assert.Equal(t, search.DefaultConfig().Alpha, config.Alpha)
}

func TestLoadYaml(t *testing.T) {
	file := write(t, "search.yaml", "mode: vns\nvnsMax: 30\npertMax: 4\n")

	config, err := Load(file)

	require.Nil(t, err)
	assert.Equal(t, search.ModeVNS, config.Mode)
	assert.Equal(t, 30, config.VnsMax)
	assert.Equal(t, 4, config.PertMax)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "search.toml", "mode = 'sa'"))
	assert.NotNil(t, err)

	_, err = Load(write(t, "search.json", `{"mode": "tabu"}`))
	assert.NotNil(t, err)

	_, err = Load(write(t, "search.json", `{"temperature": 3}`))
	assert.NotNil(t, err, "unknown keys are rejected")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)
}
