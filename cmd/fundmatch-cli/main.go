package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"oakline/fundmatch/internal/app"
)

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("fundmatch-cli: %v", err)
	}
	if err := app.Run(opts); err != nil {
		log.Fatalf("fundmatch-cli: %v", err)
	}
}

func parseFlags() (app.Options, error) {
	var opts app.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.FoundationsPath, "foundations", "", "CSV/TSV/XLSX file with foundation records")
	flag.StringVar(&opts.FacultyPath, "faculty", "", "CSV/TSV/XLSX file with faculty records")
	flag.StringVar(&opts.OutputPath, "out", "", "Output file (default uses --output-dir/matches_*.xlsx)")
	flag.StringVar(&opts.OutputDir, "output-dir", "", "Directory for generated output files when --out is omitted")
	flag.StringVar(&opts.SchemaPath, "schema", "", "JSON file describing column aliases and keyword delimiters")
	flag.StringVar(&opts.WeightsPath, "weights", "", "JSON file with per-keyword weight multipliers")
	flag.IntVar(&opts.ScoreThreshold, "score-threshold", -1, "Minimum overall score (0-100) to include a pair (default 60)")
	flag.IntVar(&opts.TopNPerFaculty, "top-n-per-faculty", -1, "Max foundations kept per faculty after ranking (default 20)")
	flag.BoolVar(&opts.UseWeights, "use-weights", false, "Apply per-keyword weights from --weights")
	flag.BoolVar(&opts.StrictColumns, "strict-columns", false, "Fail when a required column cannot be resolved confidently")
	flag.BoolVar(&opts.Stdout, "stdout", false, "Print a per-faculty match preview to STDOUT")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --foundations FILE --faculty FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.ConfigPath = strings.TrimSpace(opts.ConfigPath)
	opts.FoundationsPath = strings.TrimSpace(opts.FoundationsPath)
	opts.FacultyPath = strings.TrimSpace(opts.FacultyPath)
	opts.OutputPath = strings.TrimSpace(opts.OutputPath)
	opts.OutputDir = strings.TrimSpace(opts.OutputDir)
	opts.SchemaPath = strings.TrimSpace(opts.SchemaPath)
	opts.WeightsPath = strings.TrimSpace(opts.WeightsPath)

	if opts.FoundationsPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --foundations file")
	}
	if opts.FacultyPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --faculty file")
	}
	return opts, nil
}
