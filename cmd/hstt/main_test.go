package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/hstt/pkg/search"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSolveFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "")
	cmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "")
	require.Nil(t, cmd.Flags().Parse(args))
	return cmd
}

func TestSearchConfigFlagsOverrideFile(t *testing.T) {
	//** Arrange
	configFile = filepath.Join(t.TempDir(), "search.yaml")
	defer func() { configFile = "" }()
	require.Nil(t, os.WriteFile(configFile, []byte("mode: sa\nseed: 5\ntimeLimit: 3\n"), 0666))
	cmd := newSolveFlags(t, "--seed", "9", "--mode", "VNS")

	//** Act
	config, err := searchConfig(cmd)

	//** Assert
	require.Nil(t, err)
	assert.Equal(t, search.ModeVNS, config.Mode)
	assert.Equal(t, uint64(9), config.Seed)
	assert.Equal(t, 3.0, config.TimeLimit)
}

func TestSearchConfigDefaults(t *testing.T) {
	//** Arrange
	cmd := newSolveFlags(t)

	//** Act
	config, err := searchConfig(cmd)

	//** Assert
	require.Nil(t, err)
	assert.Equal(t, search.DefaultConfig().Mode, config.Mode)
	assert.Equal(t, search.DefaultConfig().Seed, config.Seed)
}

func TestSearchConfigRejectsUnknownMode(t *testing.T) {
	//** Arrange
	cmd := newSolveFlags(t, "--mode", "tabu")

	//** Act
	_, err := searchConfig(cmd)

	//** Assert
	assert.NotNil(t, err)
}

func TestLoadInstance(t *testing.T) {
	//** Arrange
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "instance.yml")
	require.Nil(t, os.WriteFile(yamlFile, []byte(`
name: tiny
times: [Mo1, Mo2]
resources:
  - name: T1
    kind: teacher
events:
  - name: maths
    duration: 1
    resources: [0]
constraints:
  - name: assign
    kind: assign-time
    required: true
`), 0666))

	//** Act
	instance, err := loadInstance(yamlFile)
	_, unsupported := loadInstance(filepath.Join(dir, "instance.xml"))

	//** Assert
	require.Nil(t, err)
	assert.Equal(t, "tiny", instance.Name)
	assert.Len(t, instance.Events, 1)
	assert.NotNil(t, unsupported)
}
