package matcher

import (
	"sort"
	"strings"
)

// KeywordSet is a sorted, deduplicated list of lowercase keywords extracted
// from one record's free-text field.
type KeywordSet []string

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SplitKeywords splits a free-text cell on the given delimiter into a
// KeywordSet. Multi-line cells are flattened first so line breaks inside a
// keyword phrase do not produce bogus tokens. Blank input yields an empty
// set.
func SplitKeywords(text, delimiter string) KeywordSet {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = ","
	}
	parts := strings.Split(newlineReplacer.Replace(text), delimiter)
	seen := make(map[string]struct{}, len(parts))
	out := make(KeywordSet, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Join renders up to limit keywords separated by "; ". A limit of zero or
// less renders the whole set.
func (k KeywordSet) Join(limit int) string {
	if limit > 0 && len(k) > limit {
		k = k[:limit]
	}
	return strings.Join(k, "; ")
}
