package phrase

import (
	"fmt"
	"strings"

	"keyterm/internal/types"
)

// DefaultMaxSpan caps phrase length in tokens. Longer spans are almost
// always tagger noise and are dropped whole, never truncated.
const DefaultMaxSpan = 3

const joiner = "_"

type scanState uint8

const (
	scanning scanState = iota // outside any candidate run
	adjRun                    // inside a run of adjectives, no noun yet
	nounRun                   // inside the noun tail of a candidate
)

// Extract walks the symbol sequence once and collects every maximal
// non-overlapping (adjective)*(noun)+ span, leftmost first. Each kept
// span is joined with an underscore; spans wider than maxSpan tokens are
// discarded. An adjective run that never reaches a noun matches nothing.
func Extract(tokens []types.Token, symbols []types.Symbol, maxSpan int) ([]string, error) {
	if len(tokens) != len(symbols) {
		return nil, fmt.Errorf("%w: %d tokens vs %d symbols",
			types.ErrMalformedOutput, len(tokens), len(symbols))
	}
	if maxSpan <= 0 {
		maxSpan = DefaultMaxSpan
	}

	phrases := []string{}
	state := scanning
	start := 0

	keep := func(end int) {
		if end-start > maxSpan {
			return
		}
		parts := make([]string, 0, end-start)
		for _, tk := range tokens[start:end] {
			parts = append(parts, tk.Text)
		}
		phrases = append(phrases, strings.Join(parts, joiner))
	}

	for i, sym := range symbols {
		switch state {
		case scanning:
			switch sym {
			case types.SymAdjective:
				start, state = i, adjRun
			case types.SymNoun:
				start, state = i, nounRun
			}
		case adjRun:
			switch sym {
			case types.SymAdjective:
			case types.SymNoun:
				state = nounRun
			default:
				state = scanning
			}
		case nounRun:
			switch sym {
			case types.SymNoun:
			case types.SymAdjective:
				keep(i)
				start, state = i, adjRun
			default:
				keep(i)
				state = scanning
			}
		}
	}
	if state == nounRun {
		keep(len(symbols))
	}
	return phrases, nil
}
