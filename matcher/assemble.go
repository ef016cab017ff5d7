package matcher

import (
	"sort"
	"strconv"
)

// FacultyRecord is one faculty row after column resolution and keyword
// splitting. Field access never goes back to raw headers.
type FacultyRecord struct {
	Name        string
	Degree      string
	Rank        string
	Division    string
	CareerStage string
	Keywords    KeywordSet
}

// FoundationRecord is one foundation row after column resolution.
type FoundationRecord struct {
	Name                  string
	FundingAreas          KeywordSet
	AverageGrant          string
	CareerStageTargeted   string
	Deadlines             string
	InstitutionPreference string
	Website               string
}

// OutputRow is one qualifying faculty/foundation pairing, shaped for the
// ranked output table. Created during assembly, written once, never
// mutated.
type OutputRow struct {
	Faculty               string
	Rank                  string
	Division              string
	CareerStage           string
	TopKeywords           string
	Foundation            string
	Score                 int
	MatchedCount          int
	WhyMatched            string
	AverageGrant          string
	CareerStageTargeted   string
	Deadlines             string
	InstitutionPreference string
	Website               string

	// facultyIdx identifies the source faculty record, so the per-faculty
	// cap treats two records sharing a display name as separate groups.
	facultyIdx int
}

// OutputHeaders is the fixed column set of the output table, in order.
func OutputHeaders() []string {
	return []string{
		"Faculty", "Rank", "Division", "Career Stage", "Top Keywords",
		"Foundation", "Match Score (0-100)", "Matched Keyword Count",
		"Why Matched (top)", "Average Grant", "Career Stage Targeted",
		"Deadlines/Restrictions", "Institution Preference", "Website",
	}
}

// Values renders the row in OutputHeaders order.
func (r OutputRow) Values() []string {
	return []string{
		r.Faculty, r.Rank, r.Division, r.CareerStage, r.TopKeywords,
		r.Foundation, strconv.Itoa(r.Score), strconv.Itoa(r.MatchedCount),
		r.WhyMatched, r.AverageGrant, r.CareerStageTargeted,
		r.Deadlines, r.InstitutionPreference, r.Website,
	}
}

// FacultyFromTable converts raw rows into typed records using the resolved
// mapping. Missing cells become empty fields; splitting uses the schema's
// keyword delimiter.
func FacultyFromTable(t *Table, mapping ColumnMapping, delimiter string) []FacultyRecord {
	out := make([]FacultyRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, FacultyRecord{
			Name:        cellAt(row, mapping, FieldFacultyName),
			Degree:      cellAt(row, mapping, FieldDegree),
			Rank:        cellAt(row, mapping, FieldRank),
			Division:    cellAt(row, mapping, FieldDivision),
			CareerStage: cellAt(row, mapping, FieldCareerStage),
			Keywords:    SplitKeywords(cellAt(row, mapping, FieldKeywords), delimiter),
		})
	}
	return out
}

// FoundationsFromTable converts raw rows into typed foundation records.
func FoundationsFromTable(t *Table, mapping ColumnMapping, delimiter string) []FoundationRecord {
	out := make([]FoundationRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, FoundationRecord{
			Name:                  cellAt(row, mapping, FieldFoundationName),
			FundingAreas:          SplitKeywords(cellAt(row, mapping, FieldAreaOfFunding), delimiter),
			AverageGrant:          cellAt(row, mapping, FieldAverageGrant),
			CareerStageTargeted:   cellAt(row, mapping, FieldCareerStageTargeted),
			Deadlines:             cellAt(row, mapping, FieldDeadlines),
			InstitutionPreference: cellAt(row, mapping, FieldInstitutionPreference),
			Website:               cellAt(row, mapping, FieldWebsite),
		})
	}
	return out
}

func cellAt(row []string, mapping ColumnMapping, field string) string {
	col, ok := mapping[field]
	if !ok || col.Index < 0 || col.Index >= len(row) {
		return ""
	}
	return cleanCell(row[col.Index])
}

// AssembleOptions configure filtering and ranking of the cross product.
type AssembleOptions struct {
	ScoreThreshold int
	TopNPerFaculty int
	// Weights multiplies faculty keyword scores when non-nil.
	Weights map[string]float64
}

const (
	rationaleLimit   = 5
	topKeywordsLimit = 10
)

// Assemble walks the full faculty x foundation cross product in table
// order, keeps pairs at or above the threshold that produced at least one
// candidate, and returns rows sorted by faculty ascending, score
// descending, matched count descending, with each faculty group truncated
// to TopNPerFaculty.
func Assemble(faculty []FacultyRecord, foundations []FoundationRecord, opts AssembleOptions) []OutputRow {
	var rows []OutputRow
	for i, fac := range faculty {
		for _, fnd := range foundations {
			pair := matchKeywords(fac.Keywords, fnd.FundingAreas, opts.Weights)
			if pair.Overall < opts.ScoreThreshold || len(pair.Candidates) == 0 {
				continue
			}
			rows = append(rows, OutputRow{
				Faculty:               fac.Name,
				Rank:                  fac.Rank,
				Division:              fac.Division,
				CareerStage:           fac.CareerStage,
				TopKeywords:           fac.Keywords.Join(topKeywordsLimit),
				Foundation:            fnd.Name,
				Score:                 pair.Overall,
				MatchedCount:          pair.MatchedCount(opts.ScoreThreshold),
				WhyMatched:            pair.Rationale(rationaleLimit),
				AverageGrant:          fnd.AverageGrant,
				CareerStageTargeted:   fnd.CareerStageTargeted,
				Deadlines:             fnd.Deadlines,
				InstitutionPreference: fnd.InstitutionPreference,
				Website:               fnd.Website,
				facultyIdx:            i,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Faculty != rows[j].Faculty {
			return rows[i].Faculty < rows[j].Faculty
		}
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].MatchedCount > rows[j].MatchedCount
	})
	return capPerFaculty(rows, opts.TopNPerFaculty)
}

// capPerFaculty keeps the first n rows of each faculty record, in the
// order the rows arrive. Grouping keys on the source record, not the
// display name, so namesake faculty keep separate budgets.
func capPerFaculty(rows []OutputRow, n int) []OutputRow {
	if n <= 0 || len(rows) == 0 {
		return rows
	}
	out := make([]OutputRow, 0, len(rows))
	kept := make(map[int]int, len(rows))
	for _, row := range rows {
		if kept[row.facultyIdx] < n {
			out = append(out, row)
			kept[row.facultyIdx]++
		}
	}
	return out
}
