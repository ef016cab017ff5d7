package matcher

import (
	"fmt"
	"log"
)

// Service drives one matching run: resolve both tables' columns, convert
// rows into typed records, score the cross product and shape the ranked
// output.
type Service struct {
	cfg     Config
	schema  SchemaFile
	weights map[string]float64
	logger  *log.Logger
}

// NewService constructs a service with the given configuration and schema.
// The configuration is taken as given: a zero score threshold keeps every
// pair and a zero cap disables per-faculty truncation, so callers wanting
// defaults start from DefaultConfig or LoadConfig. The logger may be nil.
func NewService(cfg Config, schema SchemaFile, logger *log.Logger) *Service {
	return &Service{cfg: cfg, schema: schema, logger: logger}
}

// Config returns a copy of the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// SetWeights installs per-keyword multipliers used when UseWeights is
// enabled. Keys must be lowercase keyword text.
func (s *Service) SetWeights(weights map[string]float64) {
	s.weights = weights
}

// MatchResult carries the ranked output rows plus the column-resolution
// diagnostics for both input tables. Zero rows is a valid outcome, not an
// error.
type MatchResult struct {
	Rows             []OutputRow
	FacultyReport    MappingReport
	FoundationReport MappingReport
}

// MatchTables runs the full pipeline over the two input tables. Resolution
// failures (strict policy only) abort before any matching happens.
func (s *Service) MatchTables(faculty, foundations *Table) (*MatchResult, error) {
	opts := ResolveOptions{Strict: s.cfg.StrictColumns, MinConfidence: s.cfg.MinColumnConfidence}

	fndMapping, fndReport, err := ResolveColumns(foundations.Headers, s.schema.Foundation, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve foundation columns: %w", err)
	}
	facMapping, facReport, err := ResolveColumns(faculty.Headers, s.schema.Faculty, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve faculty columns: %w", err)
	}
	s.logReport(fndReport)
	s.logReport(facReport)

	facultyRecords := FacultyFromTable(faculty, facMapping, s.schema.Faculty.KeywordDelimiter(FieldKeywords))
	foundationRecords := FoundationsFromTable(foundations, fndMapping, s.schema.Foundation.KeywordDelimiter(FieldAreaOfFunding))

	var weights map[string]float64
	if s.cfg.UseWeights {
		weights = s.weights
	}
	rows := Assemble(facultyRecords, foundationRecords, AssembleOptions{
		ScoreThreshold: s.cfg.ScoreThreshold,
		TopNPerFaculty: s.cfg.TopNPerFaculty,
		Weights:        weights,
	})
	s.logf("Matched %d row(s) from %d faculty x %d foundations (threshold %d)",
		len(rows), len(facultyRecords), len(foundationRecords), s.cfg.ScoreThreshold)

	return &MatchResult{
		Rows:             rows,
		FacultyReport:    facReport,
		FoundationReport: fndReport,
	}, nil
}

func (s *Service) logReport(report MappingReport) {
	s.logf("Resolved %s columns:", report.Kind)
	for _, line := range report.Lines() {
		s.logf("  %s", line)
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
