package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/hstt/pkg/model"
	"github.com/limaJavier/hstt/pkg/search"
	"github.com/samber/lo"
)

const (
	executablePath    = "../../bin/hstt"
	instanceDirectory = "../../test/instances/"
	timeLimit         = 30
)

type ResultType int

const (
	feasible ResultType = iota
	infeasible
)

var (
	resultTypes = map[ResultType]string{
		feasible:   "feasible",
		infeasible: "infeasible",
	}
	seeds = []uint64{1, 2, 3}
)

type TestMetadata struct {
	Name        string
	Times       int
	Resources   int
	Events      int
	Constraints int
}

type BenchmarkResult struct {
	Mode          search.Mode
	Seed          uint64
	Test          TestMetadata
	Hard          uint64
	Soft          uint64
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	tests := getTests()
	results := make([]BenchmarkResult, 0, len(tests)*len(search.Modes)*len(seeds))

	for _, test := range tests {
		for _, mode := range search.Modes {
			for _, seed := range seeds {
				fmt.Printf("Benchmarking test \"%v\" with mode \"%v\" and seed %v\n", test.Name, mode, seed)

				result := measure(mode, seed, test.Name)
				result.Test = test
				results = append(results, result)
			}
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	testFiles, err := os.ReadDir(instanceDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		filename := instanceDirectory + file.Name()
		var instance model.Instance
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".json":
			instance, err = model.InstanceFromJson(filename)
		case ".yaml", ".yml":
			instance, err = model.InstanceFromYaml(filename)
		default:
			continue
		}
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:        filename,
			Times:       len(instance.Times),
			Resources:   len(instance.Resources),
			Events:      len(instance.Events),
			Constraints: len(instance.Constraints),
		})
	}

	return tests
}

func measure(mode search.Mode, seed uint64, testFile string) BenchmarkResult {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "solve",
		"--instance", testFile,
		"--mode", string(mode),
		"--seed", fmt.Sprint(seed),
		"--time-limit", fmt.Sprint(timeLimit),
		"--out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	result := BenchmarkResult{Mode: mode, Seed: seed}

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution \"hstt\" at test \"%v\" using mode \"%v\" and seed %v: %v\n", testFile, mode, seed, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result.Result = infeasible
	} else {
		result.Result = feasible
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	result.Hard, result.Soft = parseCostLine(getLine("cost: ("))
	result.Duration = parseDurationLine(getLine("wall clock"))
	result.Memory = parseMemoryLine(getLine("maximum resident set size"))
	result.CpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Mode", "Seed", "Test", "Times", "Resources", "Events", "Constraints", "Hard", "Soft", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			string(result.Mode),
			fmt.Sprintf("%d", result.Seed),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Times),
			fmt.Sprintf("%d", result.Test.Resources),
			fmt.Sprintf("%d", result.Test.Events),
			fmt.Sprintf("%d", result.Test.Constraints),
			fmt.Sprintf("%d", result.Hard),
			fmt.Sprintf("%d", result.Soft),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

// parseCostLine reads "Cost: (hard, soft)"
func parseCostLine(line string) (hard, soft uint64) {
	costStr := strings.Trim(strings.SplitN(line, ":", 2)[1], " ()")
	parts := strings.Split(costStr, ",")
	if len(parts) != 2 {
		log.Fatalf("unexpected cost format: %v", line)
	}
	hard = lo.Must(strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64))
	soft = lo.Must(strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64))
	return hard, soft
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / 1024
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
