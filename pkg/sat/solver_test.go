package sat

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		solution, err := solver.Solve(SAT{Variables: 1, Clauses: [][]int64{{1}, {-1}}})
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})
	t.Run("Empty instance", func(t *testing.T) {
		solution, err := solver.Solve(SAT{})
		assert.Nil(t, err)
		assert.NotNil(t, solution)
	})
}

func randomExecution(t *testing.T, solver SATSolver) {
	rng := rand.New(rand.NewPCG(5, 8))
	for range 20 {
		//** Arrange
		satInstance := GenerateSATInstance(rng, 12, 30)

		//** Act
		solution, err := solver.Solve(satInstance)

		//** Assert
		require.Nil(t, err)
		if solution != nil {
			assert.True(t, AssertSATSolution(satInstance, solution))
		}
	}
}

func TestToDIMACS(t *testing.T) {
	satInstance := SAT{Variables: 3, Clauses: [][]int64{{1, -2}, {3}}}
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", satInstance.ToDIMACS())
}

func TestParseSolution(t *testing.T) {
	output := "s SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

	solution, err := parseSolution(output)

	assert.Nil(t, err)
	assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, solution)
	assert.Equal(t, map[int64]bool{1: true, 3: true, 5: true}, solution.Positives())

	_, err = parseSolution("v 1 x 0\n")
	assert.NotNil(t, err)
}

func TestGetExecutablePath(t *testing.T) {
	//** Arrange
	previous := ConfigPath
	defer func() { ConfigPath = previous }()
	ConfigPath = filepath.Join(t.TempDir(), "config.json")
	require.Nil(t, os.WriteFile(ConfigPath, []byte(`{"kissatPath": "/opt/kissat"}`), 0666))

	//** Act
	path, err := getExecutablePath("kissatPath")
	_, missingErr := getExecutablePath("cadicalPath")

	//** Assert
	assert.Nil(t, err)
	assert.Equal(t, "/opt/kissat", path)
	assert.NotNil(t, missingErr)
}

func TestNewSolver(t *testing.T) {
	solver, err := NewSolver("Gophersat")
	assert.Nil(t, err)
	assert.NotNil(t, solver)

	_, err = NewSolver("minisat")
	assert.NotNil(t, err)
}
