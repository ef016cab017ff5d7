package matcher

import (
	"math"
	"sort"
	"strings"

	lev "github.com/texttheater/golang-levenshtein/levenshtein"
)

// Score returns an integer similarity in [0,100] between two strings. It is
// the maximum of a substring-aware partial ratio (catches stems and
// abbreviated phrases, e.g. "neuro" inside "neuroscience") and a token-set
// ratio (catches reordered multi-word phrases, e.g. "cancer biology" vs
// "biology of cancer"). Taking the max keeps the metric forgiving: for a
// discovery tool a missed match costs more than a noisy one.
func Score(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	p := partialRatio(a, b)
	if t := tokenSetRatio(a, b); t > p {
		return t
	}
	return p
}

// ratio is the difflib-style similarity in [0,1]. DefaultOptions charges 2
// for a substitution, so the result equals 2*matches/(len(a)+len(b)) and
// character-disjoint strings land on 0.
func ratio(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return lev.RatioForStrings(a, b, lev.DefaultOptions)
}

// partialRatio slides the shorter string across every same-length window of
// the longer one and keeps the best ratio, so a near-contiguous substring
// scores close to 100 regardless of surrounding text.
func partialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(short, long[i:i+len(short)])
		if r > best {
			best = r
		}
		if best == 1 {
			break
		}
	}
	return toScore(best)
}

// tokenSetRatio compares the sorted token intersection against each side's
// intersection-plus-remainder string and takes the best pairwise ratio.
// Word order and duplicated tokens stop mattering; shared tokens dominate.
func tokenSetRatio(a, b string) int {
	ta, tb := splitTokens(a), splitTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter, onlyA, onlyB := intersectTokens(ta, tb)
	base := strings.Join(inter, " ")
	left := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	right := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := ratio([]rune(left), []rune(right))
	if base != "" {
		if r := ratio([]rune(base), []rune(left)); r > best {
			best = r
		}
		if r := ratio([]rune(base), []rune(right)); r > best {
			best = r
		}
	}
	return toScore(best)
}

func splitTokens(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	out := fields[:0]
	for i, f := range fields {
		if i > 0 && f == fields[i-1] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// intersectTokens splits two sorted unique token lists into the common
// tokens and each side's remainder, all still sorted.
func intersectTokens(a, b []string) (inter, onlyA, onlyB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	inInter := make(map[string]struct{})
	for _, t := range a {
		if _, ok := inB[t]; ok {
			inter = append(inter, t)
			inInter[t] = struct{}{}
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range b {
		if _, ok := inInter[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	return inter, onlyA, onlyB
}

func toScore(r float64) int {
	s := int(math.Round(r * 100))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
