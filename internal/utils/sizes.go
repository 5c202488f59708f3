package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSizes parses a comma-separated list of array lengths. Each entry is
// a number with an optional k, m, or g multiplier (decimal, case
// insensitive), so "10k,1.5m,2g" yields 10000, 1500000, 2000000000.
// Empty entries are skipped.
func ParseSizes(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		mult := 1.0
		switch {
		case strings.HasSuffix(tok, "k"), strings.HasSuffix(tok, "K"):
			mult = 1e3
			tok = tok[:len(tok)-1]
		case strings.HasSuffix(tok, "m"), strings.HasSuffix(tok, "M"):
			mult = 1e6
			tok = tok[:len(tok)-1]
		case strings.HasSuffix(tok, "g"), strings.HasSuffix(tok, "G"):
			mult = 1e9
			tok = tok[:len(tok)-1]
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", tok, err)
		}
		n := int(f * mult)
		if n <= 0 {
			return nil, fmt.Errorf("invalid size %q: must be positive", tok)
		}
		out = append(out, n)
	}
	return out, nil
}

// SplitList splits a comma-separated list of names, dropping empty
// entries.
func SplitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
