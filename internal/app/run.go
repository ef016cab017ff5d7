package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"oakline/fundmatch/matcher"
)

// Options carries the CLI surface into the pipeline. Numeric values below
// zero mean "keep the config file's value".
type Options struct {
	ConfigPath      string
	FoundationsPath string
	FacultyPath     string
	OutputPath      string
	OutputDir       string
	SchemaPath      string
	WeightsPath     string
	ScoreThreshold  int
	TopNPerFaculty  int
	UseWeights      bool
	StrictColumns   bool
	Stdout          bool
}

// Run executes one matching run end to end: load config and schema, read
// both tables, match, and write the ranked output. Zero matches is not an
// error; it prints an advisory and writes nothing.
func Run(opts Options) error {
	cfg, err := matcher.LoadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = mergeOptions(cfg, opts)

	ensureSchemaFile(cfg.SchemaPath)
	schema, err := matcher.LoadSchemaFile(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	service := matcher.NewService(cfg, schema, logger)
	if cfg.UseWeights {
		if cfg.WeightsPath == "" {
			return errors.New("--use-weights requires a weights file (--weights or weightsPath in config)")
		}
		weights, err := loadWeights(cfg.WeightsPath)
		if err != nil {
			return fmt.Errorf("load keyword weights: %w", err)
		}
		service.SetWeights(weights)
	}

	foundations, err := matcher.ReadTable(opts.FoundationsPath)
	if err != nil {
		return fmt.Errorf("read foundations table: %w", err)
	}
	faculty, err := matcher.ReadTable(opts.FacultyPath)
	if err != nil {
		return fmt.Errorf("read faculty table: %w", err)
	}
	logger.Printf("Read %d foundation row(s) from %s", len(foundations.Rows), opts.FoundationsPath)
	logger.Printf("Read %d faculty row(s) from %s", len(faculty.Rows), opts.FacultyPath)

	result, err := service.MatchTables(faculty, foundations)
	if err != nil {
		return err
	}
	if len(result.Rows) == 0 {
		fmt.Printf("No matches found at or above threshold %d. Try lowering --score-threshold.\n", cfg.ScoreThreshold)
		return nil
	}

	outputPath, err := resolveOutputPath(opts.OutputPath, cfg.OutputDir)
	if err != nil {
		return err
	}
	table := matcher.Table{Headers: matcher.OutputHeaders()}
	for _, row := range result.Rows {
		table.Rows = append(table.Rows, row.Values())
	}
	if err := matcher.WriteTable(outputPath, &table); err != nil {
		return fmt.Errorf("write output table: %w", err)
	}
	fmt.Printf("Wrote %d match row(s) to %s\n", len(result.Rows), outputPath)

	if opts.Stdout {
		printPreview(result.Rows)
	}
	return nil
}

// mergeOptions lays CLI flags over the loaded config.
func mergeOptions(cfg matcher.Config, opts Options) matcher.Config {
	if opts.ScoreThreshold >= 0 {
		cfg.ScoreThreshold = opts.ScoreThreshold
	}
	if opts.TopNPerFaculty >= 0 {
		cfg.TopNPerFaculty = opts.TopNPerFaculty
	}
	if opts.SchemaPath != "" {
		cfg.SchemaPath = opts.SchemaPath
	}
	if opts.WeightsPath != "" {
		cfg.WeightsPath = opts.WeightsPath
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.UseWeights {
		cfg.UseWeights = true
	}
	if opts.StrictColumns {
		cfg.StrictColumns = true
	}
	return cfg
}

// ensureSchemaFile writes the built-in schema to the given path when the
// file does not exist yet, giving operators a starting point for editing
// alias lists outside of the binary.
func ensureSchemaFile(path string) {
	if path == "" {
		return
	}
	clean := filepath.Clean(path)
	if _, err := os.Stat(clean); err == nil || !os.IsNotExist(err) {
		return
	}
	dir := filepath.Dir(clean)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Println("create schema directory:", err)
			return
		}
	}
	if err := matcher.SaveSchemaFile(clean, matcher.DefaultSchemaFile()); err != nil {
		fmt.Println("write default schema file:", err)
	}
}

func resolveOutputPath(path, dir string) (string, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return absPath, nil
	}
	if dir == "" {
		dir = "outputs"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("matches_%s.xlsx", time.Now().Format("20060102150405"))
	return filepath.Join(absDir, filename), nil
}

// printPreview writes a short per-faculty summary to stdout.
func printPreview(rows []matcher.OutputRow) {
	fmt.Println()
	fmt.Println("==== Match preview ====")
	last := ""
	for i, row := range rows {
		if i == 0 || row.Faculty != last {
			last = row.Faculty
			fmt.Printf("%s (%s, %s)\n", row.Faculty, row.Rank, row.Division)
		}
		fmt.Printf("  - %s (score %d, %d matched): %s\n", row.Foundation, row.Score, row.MatchedCount, row.WhyMatched)
	}
}
