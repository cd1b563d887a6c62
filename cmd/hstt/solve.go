package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/limaJavier/hstt/pkg/config"
	"github.com/limaJavier/hstt/pkg/model"
	"github.com/limaJavier/hstt/pkg/sat"
	"github.com/limaJavier/hstt/pkg/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func runSolve(cmd *cobra.Command, _ []string) {
	settings, err := searchConfig(cmd)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if strings.ToLower(solverName) == "kissat" {
		setConfigPath()
	}
	solver, err := sat.NewSolver(solverName)
	if err != nil {
		log.Fatal(err)
	}

	instance, err := loadInstance(instanceFile)
	if err != nil {
		log.Fatalf("cannot load instance: %v", err)
	}

	logger := newLogger()
	options := []search.Option{search.WithLogger(logger)}
	if metricsAddr != "" {
		registry := prometheus.NewRegistry()
		options = append(options, search.WithMetrics(search.NewMetrics(registry)))
		serveMetrics(registry, logger)
	}

	//** Construction
	soln := model.NewSolution(&instance)
	if err := soln.Construct(solver, maxVariables); err != nil {
		log.Fatalf("an error occurred during construction: %v", err)
	}
	logger.Info("constructed", "instance", instance.Name, "meets", soln.MeetCount(), "cost", soln.Cost().String())

	//** Search
	best, report, err := search.Run(soln, settings, options...)
	if err != nil {
		log.Fatalf("an error occurred during search: %v", err)
	}
	for name, stats := range report.Moves {
		logger.Info("neighborhood", "name", name, "tried", stats.Tried, "infeasible", stats.Infeasible, "accepted", stats.Accepted, "rejected", stats.Rejected)
	}

	if !best.Verify() {
		fmt.Fprintf(os.Stderr, "cost %v could not be verified\n", best.Cost())
		os.Exit(exitUnverified)
	}

	if err := writeSolution(best); err != nil {
		log.Fatalf("an error occurred while writing the output: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Cost: %v\n", best.Cost())
	fmt.Fprintf(os.Stderr, "Iterations: %v\n", report.Iterations)
	if best.Cost().Hard > 0 {
		os.Exit(exitInfeasible)
	}
	os.Exit(exitFeasible)
}

// searchConfig loads the configuration file, if any, and lets explicitly set flags override it
func searchConfig(cmd *cobra.Command) (search.Config, error) {
	settings := search.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return search.Config{}, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		settings.Mode = search.Mode(strings.ToLower(mode))
	}
	if flags.Changed("seed") {
		settings.Seed = seed
	}
	if flags.Changed("time-limit") {
		settings.TimeLimit = timeLimit
	}
	return settings, settings.Validate()
}

func loadInstance(file string) (model.Instance, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return model.InstanceFromJson(file)
	case ".yaml", ".yml":
		return model.InstanceFromYaml(file)
	default:
		return model.Instance{}, fmt.Errorf("unsupported instance format \"%v\": use .json, .yaml or .yml", filepath.Ext(file))
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func serveMetrics(registry *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "addr", metricsAddr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", metricsAddr)
}

func writeSolution(soln *model.Solution) error {
	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		return soln.WriteJson(os.Stdout)
	}
	return soln.WriteJsonFile(outFile)
}

// setConfigPath points the SAT package at the config.json next to the executable, which
// names the paths of external solvers
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}
	execPath = path.Dir(execPath)

	// Verify config.json exists
	files, err := os.ReadDir(execPath)
	if err != nil {
		log.Fatalf("cannot read executable's directory: %v", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if !slices.Contains(fileNames, "config.json") {
		log.Fatalf("config.json file was not found: %v", fileNames)
	}

	sat.ConfigPath = execPath + "/config.json"
}
