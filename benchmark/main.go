// Package main provides a performance benchmarking tool for the ytdash CLI.
// It measures execution times across channel exports and command types,
// running each command several times with and without run history,
// and writes a CSV summary for documentation.
//
// Prerequisites:
// - ytdash binary installed and available in PATH
// - Channel exports, one directory per channel, under the given base directory
//
// Usage: go run benchmark/main.go [channel-base-dir]
//
//	channel-base-dir: Directory whose subdirectories are channel exports
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the averages of one command on one channel.
type BenchmarkResult struct {
	Channel     string
	Command     string
	NoStoreTime string
	StoreTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ChannelBase string
	Timeout     time.Duration
	Runs        int
	Channels    []string
	HistoryHome string // HOME used for sqlite runs so real history is untouched
}

// completionPhrases identify a successful text run of each command.
var completionPhrases = map[string]string{
	"aggregate": "Aggregate completed in",
	"videos":    "Listed",
	"video":     "Video analysis completed in",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [channel-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	channels, err := discoverChannels(os.Args[1])
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	home, err := os.MkdirTemp("", "ytdash-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create history home: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(home) }()

	config := BenchmarkConfig{
		ChannelBase: os.Args[1],
		Timeout:     2 * time.Minute,
		Runs:        5,
		Channels:    channels,
		HistoryHome: home,
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// discoverChannels verifies that ytdash is on PATH and lists the channel directories.
func discoverChannels(base string) ([]string, error) {
	if _, err := exec.LookPath("ytdash"); err != nil {
		return nil, errors.New("ytdash binary not found in PATH")
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var channels []string
	for _, e := range entries {
		if e.IsDir() {
			channels = append(channels, e.Name())
		}
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channel exports found in %s", base)
	}
	return channels, nil
}

// runBenchmarks executes all commands across configured channels.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d channels, %v timeout, %d runs per phase\n",
		len(config.Channels), config.Timeout, config.Runs)

	for _, channel := range config.Channels {
		fmt.Printf("Benchmarking %s\n", channel)
		dir := filepath.Join(config.ChannelBase, channel)

		results = append(results, runBenchmarkSuite(config, channel, "aggregate", dir))
		results = append(results, runBenchmarkSuite(config, channel, "videos", dir))

		if id, err := firstVideoID(dir); err == nil {
			results = append(results, runBenchmarkSuite(config, channel, "video", dir, "--video", id))
		} else {
			fmt.Printf("  Skipping video analysis: %v\n", err)
		}
	}

	return results
}

// firstVideoID asks ytdash for the first selectable video of a channel.
func firstVideoID(dir string) (string, error) {
	out, err := exec.Command("ytdash", "videos", dir, "--output", "csv", "--limit", "1").Output()
	if err != nil {
		return "", err
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) < 2 || len(records[1]) == 0 {
		return "", errors.New("channel has no videos")
	}
	return records[1][0], nil
}

// runBenchmarkSuite runs a command without and with the sqlite run history.
func runBenchmarkSuite(config BenchmarkConfig, channel, command string, args ...string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, channel)

	runPhase := func(backend string) string {
		times := runBenchmark(config, command, backend, args)
		if len(times) == 0 {
			return "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	noStore := runPhase("none")
	store := runPhase("sqlite")
	fmt.Printf("  No-store average: %s, SQLite average: %s\n", noStore, store)

	return BenchmarkResult{
		Channel:     channel,
		Command:     command,
		NoStoreTime: noStore,
		StoreTime:   store,
	}
}

// runBenchmark executes a ytdash command repeatedly and returns the successful run times.
func runBenchmark(config BenchmarkConfig, command, backend string, extraArgs []string) []float64 {
	args := append([]string{command, "--analysis-backend", backend}, extraArgs...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "ytdash", args...)
		cmd.Env = append(os.Environ(), "HOME="+config.HistoryHome)

		start := time.Now()
		output, err := cmd.CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output, command) {
			times = append(times, elapsed)
		}
	}
	return times
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	return strings.Contains(string(output), completionPhrases[command])
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("ytdash_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"channel", "cmd", "no_store_avg", "sqlite_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Channel, result.Command, result.NoStoreTime, result.StoreTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "aggregate", "Aggregate:")
	printCommandSummary(results, "videos", "Video List:")
	printCommandSummary(results, "video", "Video Analysis:")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-16s: No-store: %s, SQLite: %s\n", result.Channel, result.NoStoreTime, result.StoreTime)
		}
	}
}
