package filter

import "keyterm/internal/types"

// POSFilter keeps tokens whose raw tag is in the allow set, preserving
// input order and duplicates.
type POSFilter struct {
	allowed map[string]struct{}
}

func NewPOSFilter(tags ...string) *POSFilter {
	f := &POSFilter{allowed: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		f.allowed[t] = struct{}{}
	}
	return f
}

func (f *POSFilter) Gen(tokens []types.Token) []types.Token {
	r := make([]types.Token, 0, len(tokens))
	for _, tk := range tokens {
		if _, ok := f.allowed[tk.POS]; ok {
			r = append(r, tk)
		}
	}
	return r
}

// Chain applies filters left to right.
func Chain(tokens []types.Token, filters ...types.Filter) []types.Token {
	for _, f := range filters {
		tokens = f.Gen(tokens)
	}
	return tokens
}

// Texts projects tokens onto their surface strings.
func Texts(tokens []types.Token) []string {
	out := make([]string, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.Text
	}
	return out
}
