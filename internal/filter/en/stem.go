package en

import (
	"keyterm/internal/common"
	"keyterm/internal/types"

	snowballeng "github.com/kljensen/snowball/english"
)

type StemmerFilter struct {
}

func (StemmerFilter) Gen(tokens []types.Token) []types.Token {
	r := common.CopyTokens(tokens)
	for i := range r {
		r[i].Text = snowballeng.Stem(r[i].Text, false)
	}
	return r
}
