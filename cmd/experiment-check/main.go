// Command experiment-check loads an experiment list snapshot from a JSON file,
// prints a summary of its contents, and verifies that experiments sharing an
// imageset agree on their acquisition models.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"beamcore/pkg/domain"
)

var exitFunc = os.Exit

// main runs the command-line interface using the program arguments and exits
// the process with the status code returned by cli.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("experiment-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var path string
	var quiet bool
	fs.StringVar(&path, "file", "", "path to experiment list JSON")
	fs.BoolVar(&quiet, "quiet", false, "suppress the summary, report violations only")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if path == "" {
		fmt.Fprintln(stderr, "experiment-check: -file is required")
		fs.Usage()
		return 2
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "experiment-check: read %s: %v\n", path, err)
		return 1
	}
	var list domain.ExperimentList
	if err := json.Unmarshal(raw, &list); err != nil {
		fmt.Fprintf(stderr, "experiment-check: decode %s: %v\n", path, err)
		return 1
	}

	if !quiet {
		printSummary(stdout, &list)
	}

	result := list.Validate()
	if result.OK() {
		fmt.Fprintf(stdout, "%s: consistent (%d experiments)\n", path, list.Size())
		return 0
	}
	for _, v := range result.Violations {
		fmt.Fprintf(stderr, "%s: %s: %s (experiments %v)\n", path, v.Rule, v.Message, v.Indices)
	}
	fmt.Fprintf(stderr, "%s: inconsistent (%d violations)\n", path, len(result.Violations))
	return 1
}

func printSummary(w io.Writer, list *domain.ExperimentList) {
	snap, err := list.Export()
	if err != nil {
		fmt.Fprintf(w, "experiments: %d (model summary unavailable: %v)\n", list.Size(), err)
		return
	}
	fmt.Fprintf(w, "experiments: %d\n", len(snap.Experiments))
	fmt.Fprintf(w, "  beams:       %d\n", len(snap.Beams))
	fmt.Fprintf(w, "  detectors:   %d\n", len(snap.Detectors))
	fmt.Fprintf(w, "  goniometers: %d\n", len(snap.Goniometers))
	fmt.Fprintf(w, "  scans:       %d\n", len(snap.Scans))
	fmt.Fprintf(w, "  crystals:    %d\n", len(snap.Crystals))
	fmt.Fprintf(w, "  profiles:    %d\n", len(snap.Profiles))
	fmt.Fprintf(w, "  imagesets:   %d\n", len(snap.Imagesets))
}
