package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/shift-scheduler/internal/httpapi"
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
)

// defaultCatalog mirrors cmd/solver-api's shift catalog so solverctl can
// solve offline without a running server.
var defaultCatalog = []scheduler.Shift{
	{Code: "DA", Name: "Day A", Start: 7, End: 15},
	{Code: "DB", Name: "Day B", Start: 9, End: 18},
	{Code: "EA", Name: "Evening A", Start: 15, End: 23},
	{Code: "NA", Name: "Night A", Start: 21, End: 7},
	{Code: "NB", Name: "Night B", Start: 23, End: 9},
	{Code: "NC", Name: "Night C", Start: 0, End: 9},
}

var (
	infile     string
	outfile    string
	timeLimit  float64
	rootCmd    = &cobra.Command{
		Use:   "solverctl",
		Short: "Offline driver for the monthly shift-scheduling engine",
	}
	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a monthly schedule from a JSON request file",
		RunE:  runSolve,
	}
)

func init() {
	solveCmd.Flags().StringVar(&infile, "in", "", "path to a JSON SolveRequest file (required)")
	solveCmd.Flags().StringVar(&outfile, "out", "", "path to write the JSON Output to (required)")
	solveCmd.Flags().Float64Var(&timeLimit, "time-limit", 60.0, "solver time limit in seconds")
	_ = solveCmd.MarkFlagRequired("in")
	_ = solveCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(infile)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var req httpapi.SolveRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	catalog, verr := scheduler.NewCatalog(defaultCatalog)
	if verr != nil {
		return writeOutput(outfile, scheduler.AssembleValidationError(verr.Code, verr.Message, verr.Details, nil, nil))
	}

	input := req.ToInput()

	var logLines []string
	start := time.Now()
	out, err := scheduler.Solve(input, catalog, timeLimit, &logLines)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	if err := writeOutput(outfile, out); err != nil {
		return err
	}

	for _, line := range logLines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s in %s\n", outfile, elapsed.Round(time.Millisecond))
	return nil
}

// writeOutput marshals a scheduler.Output to the --out file, used both for
// a completed solve and for a catalog-construction failure turned into the
// same stable error envelope (spec §4.1's error envelope, §6 error codes).
func writeOutput(path string, out scheduler.Output) error {
	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
