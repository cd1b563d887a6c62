package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRawInstance(t *testing.T) {
	instance := smallInstance(t)

	assert.Equal(t, []int{2, 3}, instance.Rooms)
	assert.Equal(t, []int{2}, instance.Events[0].Split)
	assert.Len(t, instance.Constraints, 5)

	clashes := instance.Constraints[1]
	assert.Equal(t, monitor.KindAvoidClashes, clashes.Kind)
	assert.Equal(t, []int{0, 1, 2, 3}, clashes.Resources, "empty references stand for every resource")
	assert.Equal(t, uint64(1), clashes.Weight)
	assert.Equal(t, "linear", clashes.Function.Name)

	assert.Equal(t, []int{3}, instance.Constraints[2].Times)
	assert.Equal(t, monitor.SplitLimits{MinAmount: 1, MaxAmount: 2, MinDuration: 1, MaxDuration: 2}, instance.Constraints[4].Limits)
}

func TestProcessRawInstanceErrors(t *testing.T) {
	invalid := map[string]func(raw *RawInstance){
		"no times":            func(raw *RawInstance) { raw.Times = nil },
		"unknown kind":        func(raw *RawInstance) { raw.Resources[0].Kind = "student" },
		"zero duration":       func(raw *RawInstance) { raw.Events[0].Duration = 0 },
		"unknown resource":    func(raw *RawInstance) { raw.Events[1].Resources = []int{9} },
		"room is not a room":  func(raw *RawInstance) { raw.Events[2].Rooms = []int{0} },
		"bad split":           func(raw *RawInstance) { raw.Events[0].Split = []int{1, 2} },
		"duplicate resource":  func(raw *RawInstance) { raw.Events[1].Resources = []int{0, 0} },
		"unknown constraint":  func(raw *RawInstance) { raw.Constraints[0].Kind = "prefer-times" },
		"unknown function":    func(raw *RawInstance) { raw.Constraints[0].CostFunction = "cubic" },
		"unknown time group":  func(raw *RawInstance) { raw.Constraints[3].TimeGroups = []int{4} },
		"missing time groups": func(raw *RawInstance) { raw.Constraints[3].TimeGroups = nil },
		"inverted limits":     func(raw *RawInstance) { raw.Constraints[3].Minimum = 4 },
		"inverted split":      func(raw *RawInstance) { raw.Constraints[4].MinAmount = 3 },
		"time out of range":   func(raw *RawInstance) { raw.TimeGroups[0].Times = []int{4} },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			raw := smallRawInstance()
			mutate(&raw)
			_, err := ProcessRawInstance(raw)
			assert.NotNil(t, err)
		})
	}
}

func TestInstanceFiles(t *testing.T) {
	directory := t.TempDir()

	t.Run("Json", func(t *testing.T) {
		//** Arrange
		file := filepath.Join(directory, "instance.json")
		require.Nil(t, os.WriteFile(file, []byte(`{
			"name": "json",
			"times": ["a", "b"],
			"resources": [{"name": "T1", "kind": "teacher"}],
			"events": [{"name": "e", "duration": 2, "resources": [0], "split": [1, 1]}],
			"constraints": [{"name": "c", "kind": "assign-time", "required": true, "weight": 3, "costFunction": "quadratic"}]
		}`), 0666))

		//** Act
		instance, err := InstanceFromJson(file)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, "json", instance.Name)
		assert.Equal(t, []int{1, 1}, instance.Events[0].Split)
		assert.Equal(t, uint64(3), instance.Constraints[0].Weight)
		assert.Equal(t, "quadratic", instance.Constraints[0].Function.Name)
	})

	t.Run("Yaml", func(t *testing.T) {
		file := filepath.Join(directory, "instance.yaml")
		require.Nil(t, os.WriteFile(file, []byte(`
name: yaml
times: [a, b, c]
resources:
  - {name: R1, kind: room}
events:
  - {name: e, duration: 1, rooms: [0]}
constraints:
  - {name: c, kind: avoid-clashes, required: true}
`), 0666))

		instance, err := InstanceFromYaml(file)

		require.Nil(t, err)
		assert.Equal(t, "yaml", instance.Name)
		assert.Equal(t, []int{0}, instance.Rooms)
		assert.Equal(t, []int{0}, instance.Events[0].Rooms)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := InstanceFromJson(filepath.Join(directory, "missing.json"))
		assert.NotNil(t, err)
	})
}
