package matcher

import (
	"fmt"
	"strings"
)

// ResolvedColumn records which actual header a logical field was bound to
// and how confident the resolver was about it.
type ResolvedColumn struct {
	Field      string
	Header     string
	Index      int
	Confidence int
}

// ColumnMapping maps logical field names to their resolved source columns
// for one table instance. Built once per table, never mutated afterwards.
type ColumnMapping map[string]ResolvedColumn

// MappingReport is the operator-facing record of one table's resolution:
// every binding in schema order, plus notes about fields that landed on the
// same source column.
type MappingReport struct {
	Kind      string
	Columns   []ResolvedColumn
	Conflicts []string
}

// Lines renders the report for logging.
func (r MappingReport) Lines() []string {
	lines := make([]string, 0, len(r.Columns)+len(r.Conflicts))
	for _, c := range r.Columns {
		lines = append(lines, fmt.Sprintf("%-24s -> %-28q (confidence %d)", c.Field, c.Header, c.Confidence))
	}
	lines = append(lines, r.Conflicts...)
	return lines
}

// SchemaResolutionError reports a logical field that could not be bound to
// any source column under the strict policy.
type SchemaResolutionError struct {
	Kind  string
	Field string
	Best  int
}

func (e *SchemaResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve required column %q in %s table (best confidence %d)", e.Field, e.Kind, e.Best)
}

// ResolveOptions selects the resolution policy. Lenient (the default)
// always binds every field for a non-empty header list, even at confidence
// zero; strict fails when the best candidate scores below MinConfidence.
type ResolveOptions struct {
	Strict        bool
	MinConfidence int
}

const defaultMinConfidence = 40

// ResolveColumns binds every logical field of the schema to one actual
// header. Per field: a containment pass over normalized headers first (the
// longest matching alias wins, so more specific aliases beat generic ones),
// then a token-set fuzzy fallback over all alias/header pairs. Fields are
// resolved independently; two fields may land on the same header, which the
// report surfaces as a conflict note rather than an error.
func ResolveColumns(headers []string, schema TableSchema, opts ResolveOptions) (ColumnMapping, MappingReport, error) {
	report := MappingReport{Kind: schema.Kind}
	if len(headers) == 0 {
		field := ""
		if len(schema.Fields) > 0 {
			field = schema.Fields[0].Name
		}
		return nil, report, &SchemaResolutionError{Kind: schema.Kind, Field: field}
	}
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}
	normalized := NormalizeAll(headers)

	mapping := make(ColumnMapping, len(schema.Fields))
	for _, field := range schema.Fields {
		col, ok := resolveByContainment(headers, normalized, field)
		if !ok {
			col = resolveByFuzzy(headers, normalized, field)
		}
		if opts.Strict && col.Confidence < minConfidence {
			return nil, report, &SchemaResolutionError{Kind: schema.Kind, Field: field.Name, Best: col.Confidence}
		}
		mapping[field.Name] = col
		report.Columns = append(report.Columns, col)
	}
	report.Conflicts = findConflicts(report.Columns)
	return mapping, report, nil
}

// resolveByContainment binds the field to a header whose normalized form
// contains one of the field's normalized aliases. Candidates are ranked by
// alias length; the first header wins ties.
func resolveByContainment(headers, normalized []string, field LogicalField) (ResolvedColumn, bool) {
	bestIdx := -1
	bestAliasLen := 0
	bestAlias := ""
	for _, alias := range field.Aliases {
		na := NormalizeText(alias)
		if na == "" || len(na) <= bestAliasLen {
			continue
		}
		for idx, header := range normalized {
			if strings.Contains(header, na) {
				bestIdx = idx
				bestAliasLen = len(na)
				bestAlias = na
				break
			}
		}
	}
	if bestIdx < 0 {
		return ResolvedColumn{}, false
	}
	return ResolvedColumn{
		Field:      field.Name,
		Header:     headers[bestIdx],
		Index:      bestIdx,
		Confidence: Score(bestAlias, normalized[bestIdx]),
	}, true
}

// resolveByFuzzy scores every header against every alias with the token-set
// ratio and keeps the best header. With nothing scoring above zero the
// first column stands in, so the lenient policy always has a binding.
func resolveByFuzzy(headers, normalized []string, field LogicalField) ResolvedColumn {
	aliases := NormalizeAll(field.Aliases)
	bestIdx := 0
	bestScore := 0
	for idx, header := range normalized {
		for _, alias := range aliases {
			if s := tokenSetRatio(alias, header); s > bestScore {
				bestIdx = idx
				bestScore = s
			}
		}
	}
	return ResolvedColumn{
		Field:      field.Name,
		Header:     headers[bestIdx],
		Index:      bestIdx,
		Confidence: bestScore,
	}
}

func findConflicts(columns []ResolvedColumn) []string {
	byIndex := make(map[int]string, len(columns))
	var conflicts []string
	for _, c := range columns {
		if prev, ok := byIndex[c.Index]; ok {
			conflicts = append(conflicts, fmt.Sprintf("warning: %q and %q both resolved to column %q", prev, c.Field, c.Header))
			continue
		}
		byIndex[c.Index] = c.Field
	}
	return conflicts
}
