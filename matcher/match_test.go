package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeywordsEmptySets(t *testing.T) {
	full := KeywordSet{"oncology"}
	for _, pair := range []struct{ src, dst KeywordSet }{
		{nil, full},
		{full, nil},
		{nil, nil},
	} {
		got := MatchKeywords(pair.src, pair.dst)
		assert.Equal(t, 0, got.Overall)
		assert.Empty(t, got.Candidates)
	}
}

func TestMatchKeywordsPicksBestTarget(t *testing.T) {
	source := KeywordSet{"immunotherapy"}
	target := KeywordSet{"arts education", "immune therapy", "nursing"}
	got := MatchKeywords(source, target)

	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "immune therapy", got.Candidates[0].Foundation)
	assert.Equal(t, got.Candidates[0].Score, got.Overall)
	assert.GreaterOrEqual(t, got.Overall, 60)
}

func TestMatchKeywordsCandidateOrdering(t *testing.T) {
	source := KeywordSet{"astronomy", "biology", "chemistry"}
	target := KeywordSet{"biology", "chemistry"}
	got := MatchKeywords(source, target)

	require.Len(t, got.Candidates, 3)
	// exact matches first, ties broken by source keyword ascending
	assert.Equal(t, "biology", got.Candidates[0].Faculty)
	assert.Equal(t, "chemistry", got.Candidates[1].Faculty)
	assert.Equal(t, "astronomy", got.Candidates[2].Faculty)
	assert.Equal(t, 100, got.Overall)
}

func TestMatchedCount(t *testing.T) {
	p := PairScore{Candidates: []MatchCandidate{
		{Score: 95}, {Score: 60}, {Score: 40},
	}}
	assert.Equal(t, 2, p.MatchedCount(60))
	assert.Equal(t, 3, p.MatchedCount(0))
}

func TestRationaleFormat(t *testing.T) {
	p := PairScore{Candidates: []MatchCandidate{
		{Faculty: "immunotherapy", Foundation: "immune therapy", Score: 89},
		{Faculty: "oncology", Foundation: "cancer research", Score: 41},
	}}
	assert.Equal(t, "immunotherapy ~ immune therapy (89); oncology ~ cancer research (41)", p.Rationale(5))
	assert.Equal(t, "immunotherapy ~ immune therapy (89)", p.Rationale(1))
}

func TestMatchKeywordsWeighted(t *testing.T) {
	source := KeywordSet{"biology", "teaching"}
	target := KeywordSet{"biology", "teaching"}

	weights := map[string]float64{"teaching": 0.5}
	got := MatchKeywordsWeighted(source, target, weights)

	require.Len(t, got.Candidates, 2)
	assert.Equal(t, 100, got.Overall)
	byKeyword := map[string]int{}
	for _, c := range got.Candidates {
		byKeyword[c.Faculty] = c.Score
	}
	assert.Equal(t, 100, byKeyword["biology"])
	assert.Equal(t, 50, byKeyword["teaching"])
}

func TestMatchKeywordsWeightClamped(t *testing.T) {
	got := MatchKeywordsWeighted(KeywordSet{"biology"}, KeywordSet{"biology"}, map[string]float64{"biology": 2})
	assert.Equal(t, 100, got.Overall)
}
