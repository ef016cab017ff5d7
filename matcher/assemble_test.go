package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleKeepsNearMatches(t *testing.T) {
	faculty := []FacultyRecord{{
		Name:     "Dr. Chen",
		Rank:     "Professor",
		Keywords: KeywordSet{"immunotherapy", "oncology"},
	}}
	foundations := []FoundationRecord{{
		Name:         "Harbor Health Trust",
		FundingAreas: KeywordSet{"cancer research", "immune therapy"},
		AverageGrant: "$50,000",
	}}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Dr. Chen", row.Faculty)
	assert.Equal(t, "Harbor Health Trust", row.Foundation)
	assert.GreaterOrEqual(t, row.Score, 60)
	assert.Contains(t, row.WhyMatched, "immunotherapy ~ immune therapy")
	assert.Equal(t, "$50,000", row.AverageGrant)
}

func TestAssembleFiltersUnrelatedPairs(t *testing.T) {
	faculty := []FacultyRecord{{Name: "Dr. Vega", Keywords: KeywordSet{"astrophysics"}}}
	foundations := []FoundationRecord{{
		Name:         "Caring Nurses Fund",
		FundingAreas: KeywordSet{"nursing", "education"},
	}}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60})
	assert.Empty(t, rows)
}

func TestAssembleEmptyKeywordsProduceNoRows(t *testing.T) {
	faculty := []FacultyRecord{{Name: "Dr. Blank"}}
	foundations := []FoundationRecord{{Name: "Open Fund", FundingAreas: KeywordSet{"anything"}}}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 0})
	assert.Empty(t, rows)
}

func TestAssembleRanksByScoreWithinFaculty(t *testing.T) {
	faculty := []FacultyRecord{{Name: "Dr. Ruiz", Keywords: KeywordSet{"machine learning"}}}
	foundations := []FoundationRecord{
		{Name: "Quantum Fund", FundingAreas: KeywordSet{"quantum learning"}},
		{Name: "ML Fund", FundingAreas: KeywordSet{"machine learning"}},
	}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60})
	require.Len(t, rows, 2)
	assert.Equal(t, "ML Fund", rows[0].Foundation)
	assert.Equal(t, 100, rows[0].Score)
	assert.Equal(t, "Quantum Fund", rows[1].Foundation)
	assert.Less(t, rows[1].Score, 100)
}

func TestAssembleCapsPerFaculty(t *testing.T) {
	faculty := []FacultyRecord{{Name: "Dr. Ruiz", Keywords: KeywordSet{"machine learning"}}}
	foundations := []FoundationRecord{
		{Name: "Quantum Fund", FundingAreas: KeywordSet{"quantum learning"}},
		{Name: "ML Fund", FundingAreas: KeywordSet{"machine learning"}},
	}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60, TopNPerFaculty: 1})
	require.Len(t, rows, 1)
	assert.Equal(t, "ML Fund", rows[0].Foundation)
}

func TestAssembleCapsNamesakesSeparately(t *testing.T) {
	// two distinct records behind the same display name each keep their
	// own top-N budget
	faculty := []FacultyRecord{
		{Name: "Dr. Chen", Division: "Biology", Keywords: KeywordSet{"biology"}},
		{Name: "Dr. Chen", Division: "Nursing", Keywords: KeywordSet{"nursing"}},
	}
	foundations := []FoundationRecord{
		{Name: "Bio Fund", FundingAreas: KeywordSet{"biology"}},
		{Name: "Mixed Fund", FundingAreas: KeywordSet{"biology", "nursing"}},
	}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60, TopNPerFaculty: 1})
	require.Len(t, rows, 2)
	assert.Equal(t, "Biology", rows[0].Division)
	assert.Equal(t, "Nursing", rows[1].Division)
}

func TestAssembleGroupsFacultyAscending(t *testing.T) {
	faculty := []FacultyRecord{
		{Name: "Zoe", Keywords: KeywordSet{"biology"}},
		{Name: "Ada", Keywords: KeywordSet{"biology"}},
	}
	foundations := []FoundationRecord{
		{Name: "Bio Fund", FundingAreas: KeywordSet{"biology"}},
		{Name: "Life Fund", FundingAreas: KeywordSet{"biology"}},
	}

	rows := Assemble(faculty, foundations, AssembleOptions{ScoreThreshold: 60})
	require.Len(t, rows, 4)
	assert.Equal(t, "Ada", rows[0].Faculty)
	assert.Equal(t, "Ada", rows[1].Faculty)
	assert.Equal(t, "Zoe", rows[2].Faculty)
	assert.Equal(t, "Zoe", rows[3].Faculty)
}

func TestOutputRowValuesMatchHeaders(t *testing.T) {
	row := OutputRow{Faculty: "A", Score: 88, MatchedCount: 2}
	values := row.Values()
	require.Len(t, values, len(OutputHeaders()))
	assert.Equal(t, "88", values[6])
	assert.Equal(t, "2", values[7])
}

func TestFacultyFromTable(t *testing.T) {
	table := &Table{
		Headers: []string{"Name", "Rank", "Keywords"},
		Rows: [][]string{
			{"Dr. Chen", "Professor", "Oncology; Immunotherapy"},
			{"Dr. Vega"},
		},
	}
	mapping := ColumnMapping{
		FieldFacultyName: {Field: FieldFacultyName, Index: 0},
		FieldRank:        {Field: FieldRank, Index: 1},
		FieldKeywords:    {Field: FieldKeywords, Index: 2},
	}

	records := FacultyFromTable(table, mapping, ";")
	require.Len(t, records, 2)
	assert.Equal(t, "Dr. Chen", records[0].Name)
	assert.Equal(t, KeywordSet{"immunotherapy", "oncology"}, records[0].Keywords)
	// short row: missing cells become empty fields
	assert.Equal(t, "Dr. Vega", records[1].Name)
	assert.Empty(t, records[1].Keywords)
}

func TestFoundationsFromTable(t *testing.T) {
	table := &Table{
		Headers: []string{"Foundation Name", "Area of Funding", "Website"},
		Rows:    [][]string{{"Harbor Trust", "Cancer Research, Immune Therapy", "https://harbor.example"}},
	}
	mapping := ColumnMapping{
		FieldFoundationName: {Field: FieldFoundationName, Index: 0},
		FieldAreaOfFunding:  {Field: FieldAreaOfFunding, Index: 1},
		FieldWebsite:        {Field: FieldWebsite, Index: 2},
	}

	records := FoundationsFromTable(table, mapping, ",")
	require.Len(t, records, 1)
	assert.Equal(t, "Harbor Trust", records[0].Name)
	assert.Equal(t, KeywordSet{"cancer research", "immune therapy"}, records[0].FundingAreas)
	assert.Equal(t, "https://harbor.example", records[0].Website)
}
