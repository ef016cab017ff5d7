package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// loadWeights reads per-keyword multipliers from a JSON object mapping
// keyword text to weight, e.g. {"machine learning": 1.25, "teaching": 0.5}.
// Keys are lowercased and trimmed so they line up with split keywords;
// non-positive weights are dropped. An empty path yields no weights.
func loadWeights(path string) (map[string]float64, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights file: %w", err)
	}
	raw := make(map[string]float64)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode weights file: %w", err)
	}
	weights := make(map[string]float64, len(raw))
	for keyword, weight := range raw {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || weight <= 0 {
			continue
		}
		weights[keyword] = weight
	}
	return weights, nil
}
