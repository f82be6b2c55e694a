package classify

import "keyterm/internal/types"

// Per-language tag tables. Anything absent classifies as SymOther, so
// Classify is total over arbitrary tagger output.
var (
	enTags = map[string]types.Symbol{
		"JJ":   types.SymAdjective,
		"JJR":  types.SymAdjective,
		"JJS":  types.SymAdjective,
		"NN":   types.SymNoun,
		"NNS":  types.SymNoun,
		"NNP":  types.SymNoun,
		"NNPS": types.SymNoun,
	}
	jaTags = map[string]types.Symbol{
		"形容詞": types.SymAdjective,
		"名詞":  types.SymNoun,
	}
	zhTags = map[string]types.Symbol{
		"a":  types.SymAdjective,
		"ad": types.SymAdjective,
		"ag": types.SymAdjective,
		"an": types.SymAdjective,
		"n":  types.SymNoun,
		"ng": types.SymNoun,
		"nr": types.SymNoun,
		"ns": types.SymNoun,
		"nt": types.SymNoun,
		"nz": types.SymNoun,
	}
)

func Classify(pos string, lang types.Language) types.Symbol {
	var table map[string]types.Symbol
	switch lang {
	case types.LangEN:
		table = enTags
	case types.LangJA:
		table = jaTags
	case types.LangZH:
		table = zhTags
	default:
		return types.SymOther
	}
	if sym, ok := table[pos]; ok {
		return sym
	}
	return types.SymOther
}

// Symbols classifies every token, index-aligned with the input.
func Symbols(tokens []types.Token, lang types.Language) []types.Symbol {
	syms := make([]types.Symbol, len(tokens))
	for i, tk := range tokens {
		syms[i] = Classify(tk.POS, lang)
	}
	return syms
}
