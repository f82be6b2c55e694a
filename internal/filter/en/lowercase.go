package en

import (
	"strings"

	"keyterm/internal/common"
	"keyterm/internal/types"
)

type LowercaseFilter struct {
}

func (LowercaseFilter) Gen(tokens []types.Token) []types.Token {
	r := common.CopyTokens(tokens)
	for i := range r {
		r[i].Text = strings.ToLower(r[i].Text)
	}
	return r
}
