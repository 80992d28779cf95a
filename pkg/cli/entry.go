package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/dispatch/internal/config"
	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/loader"
	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/trace"
)

// isScenarioFile checks if a file has a recognized scenario extension
func isScenarioFile(path string) bool {
	for _, ext := range config.ScenarioFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printHelp() {
	fmt.Println("Usage:")
	fmt.Println("  dispatch run <scenario.yaml> [--trace <file.db>]   execute the scenario's calls")
	fmt.Println("  dispatch stats <file.db>                           summarize a trace database")
	fmt.Println("  dispatch help                                      show this help")
}

// Run is the CLI entry point.
func Run() {
	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		return
	}

	switch args[0] {
	case "help", "-h", "--help":
		printHelp()
	case "run":
		handleRun(args[1:])
	case "stats":
		handleStats(args[1:])
	default:
		// Bare scenario path is shorthand for run.
		if isScenarioFile(args[0]) {
			handleRun(args)
			return
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func handleRun(args []string) {
	var path, tracePath string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--trace" || args[i] == "-trace":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--trace requires a database path")
				os.Exit(1)
			}
			i++
			tracePath = args[i]
		case path == "":
			path = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", args[i])
			os.Exit(1)
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "run requires a scenario file")
		os.Exit(1)
	}
	if !isScenarioFile(path) {
		fmt.Fprintf(os.Stderr, "not a scenario file: %s\n", path)
		os.Exit(1)
	}

	mod, err := loader.LoadFile(path, NewBuiltinRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", paint(colorRed, "load failed"), err)
		os.Exit(1)
	}
	for _, verr := range mod.Table.Validate() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", paint(colorYellow, "warning"), verr)
	}

	d := dispatch.New(mod.Lattice, mod.Resolver())
	var rec *trace.Recorder
	if tracePath != "" {
		rec, err = trace.Open(tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open trace database: %s\n", err)
			os.Exit(1)
		}
		d.SetTracer(rec)
	}

	failed := 0
	for _, line := range executeModule(d, mod) {
		fmt.Println(line)
		if strings.Contains(line, failureMark) {
			failed++
		}
	}
	if rec != nil {
		rec.Close()
	}
	if failed > 0 {
		os.Exit(1)
	}
}

const failureMark = "!!"

// executeModule runs every declared call and renders one line per outcome.
func executeModule(d *dispatch.Dispatcher, mod *loader.Module) []string {
	lines := make([]string, 0, len(mod.Calls))
	for _, pc := range mod.Calls {
		label := renderCall(pc)
		out, err := d.Invoke(pc.Routine, pc.Call)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s %s %s", label, paint(colorRed, failureMark), err))
			continue
		}
		if out == nil {
			// A body may legitimately produce nothing.
			out = &object.Undefined{}
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", label, paint(colorGreen, "=>"), out.Inspect()))
	}
	return lines
}

func renderCall(pc *loader.PreparedCall) string {
	parts := make([]string, len(pc.Call.Positional))
	for i, a := range pc.Call.Positional {
		parts[i] = a.Inspect()
	}
	return pc.Routine + "(" + strings.Join(parts, ", ") + ")"
}

func handleStats(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "stats requires a trace database path")
		os.Exit(1)
	}
	rec, err := trace.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open trace database: %s\n", err)
		os.Exit(1)
	}
	defer rec.Close()

	stats, err := rec.Summary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "summary failed: %s\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("trace is empty")
		return
	}
	fmt.Printf("%-24s %-14s %8s %12s\n", "ROUTINE", "OUTCOME", "COUNT", "AVG")
	for _, s := range stats {
		fmt.Printf("%-24s %-14s %8d %10dns\n", s.Routine, s.Outcome, s.Count, s.AvgNs)
	}
}
