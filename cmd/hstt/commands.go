package main

import (
	"github.com/limaJavier/hstt/pkg/model"
	"github.com/spf13/cobra"
)

// Exit codes of solve, the convention of SAT solvers
const (
	exitFeasible   = 10
	exitInfeasible = 20
	exitUnverified = 15
)

var (
	instanceFile string
	configFile   string
	solutionFile string
	outFile      string
	mode         string
	seed         uint64
	timeLimit    float64
	solverName   string
	maxVariables int
	metricsAddr  string
	verbose      bool

	rootCmd = &cobra.Command{
		Use:   "hstt",
		Short: "Timetables high school instances with local search",
		Long: `hstt builds an initial timetable for a high school instance by solving its
hard core as SAT, then improves it with descent, simulated annealing, iterated
local search or variable neighbourhood search over an incrementally evaluated
constraint tree.`,
	}
	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Constructs and improves a timetable",
		Long: `Loads an instance (JSON or YAML, chosen by extension), constructs an initial
assignment, searches it and writes the best timetable found as JSON.
Exits with 10 when every hard constraint holds, 20 when some does not
and 15 when the final cost cannot be verified.`,
		Args: cobra.NoArgs,
		Run:  runSolve,
	}
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Evaluates a timetable against its instance",
		Long: `Loads an instance and, when given, a timetable written by solve, and reports
the cost per constraint kind together with every defect.`,
		Args: cobra.NoArgs,
		Run:  runCheck,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&instanceFile, "instance", "i", "", "Path to the instance file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every move at debug level")
	_ = rootCmd.MarkPersistentFlagRequired("instance")

	solveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a search configuration (.json, .yaml or .yml)")
	solveCmd.Flags().StringVarP(&mode, "mode", "m", "", "Search mode: descent, sa, ils or vns")
	solveCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random source")
	solveCmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "Time limit in seconds, zero for none")
	solveCmd.Flags().StringVar(&solverName, "solver", "gophersat", "SAT solver used for construction: gophersat or kissat")
	solveCmd.Flags().IntVar(&maxVariables, "max-variables", model.DefaultMaxVariables, "Largest SAT encoding tried during construction")
	solveCmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to the output file; standard output when empty")
	solveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on while searching, e.g. :9090")

	checkCmd.Flags().StringVarP(&solutionFile, "solution", "s", "", "Path to a timetable written by solve")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(checkCmd)
}
