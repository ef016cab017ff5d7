package matcher

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MatchCandidate is one (faculty keyword, foundation keyword, score) triple.
type MatchCandidate struct {
	Faculty    string
	Foundation string
	Score      int
}

// PairScore summarizes how one faculty record matches one foundation
// record: the overall score plus the per-keyword evidence, sorted by
// descending score and ascending faculty keyword.
type PairScore struct {
	Overall    int
	Candidates []MatchCandidate
}

// MatchKeywords finds, for each faculty keyword, the single best-matching
// foundation keyword, and aggregates the pair's overall score as the
// maximum across those triples. Either side empty means no match at all:
// overall zero and no candidates.
func MatchKeywords(source, target KeywordSet) PairScore {
	return matchKeywords(source, target, nil)
}

// MatchKeywordsWeighted is MatchKeywords with per-source-keyword
// multipliers applied to candidate scores before aggregation. Keywords
// absent from weights keep their raw score.
func MatchKeywordsWeighted(source, target KeywordSet, weights map[string]float64) PairScore {
	return matchKeywords(source, target, weights)
}

func matchKeywords(source, target KeywordSet, weights map[string]float64) PairScore {
	if len(source) == 0 || len(target) == 0 {
		return PairScore{}
	}
	res := PairScore{Candidates: make([]MatchCandidate, 0, len(source))}
	for _, src := range source {
		best := ""
		bestScore := -1
		for _, dst := range target {
			if s := Score(src, dst); s > bestScore {
				best = dst
				bestScore = s
			}
		}
		score := applyWeight(bestScore, weightFor(weights, src))
		res.Candidates = append(res.Candidates, MatchCandidate{Faculty: src, Foundation: best, Score: score})
		if score > res.Overall {
			res.Overall = score
		}
	}
	sort.SliceStable(res.Candidates, func(i, j int) bool {
		if res.Candidates[i].Score != res.Candidates[j].Score {
			return res.Candidates[i].Score > res.Candidates[j].Score
		}
		return res.Candidates[i].Faculty < res.Candidates[j].Faculty
	})
	return res
}

// MatchedCount reports how many candidate pairs scored at or above the
// threshold.
func (p PairScore) MatchedCount(threshold int) int {
	count := 0
	for _, c := range p.Candidates {
		if c.Score >= threshold {
			count++
		}
	}
	return count
}

// Rationale renders the top candidates as human-readable evidence, e.g.
// "immunotherapy ~ immune therapy (89); oncology ~ cancer research (41)".
func (p PairScore) Rationale(limit int) string {
	cands := p.Candidates
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = fmt.Sprintf("%s ~ %s (%d)", c.Faculty, c.Foundation, c.Score)
	}
	return strings.Join(parts, "; ")
}

func weightFor(weights map[string]float64, keyword string) float64 {
	if weights == nil {
		return 1
	}
	if w, ok := weights[keyword]; ok && w > 0 {
		return w
	}
	return 1
}

func applyWeight(score int, weight float64) int {
	if score < 0 {
		return 0
	}
	if weight == 1 {
		return score
	}
	weighted := int(math.Round(float64(score) * weight))
	if weighted > 100 {
		return 100
	}
	if weighted < 0 {
		return 0
	}
	return weighted
}
