package tagger

import (
	"fmt"
	"strings"

	kdict "github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"keyterm/internal/types"
)

// Dict selects the dictionary backing the Japanese analyzer.
type Dict uint8

const (
	DictIPA Dict = iota
	DictUni
)

func (d Dict) String() string {
	switch d {
	case DictIPA:
		return "ipa"
	case DictUni:
		return "uni"
	}
	return "unknown"
}

// ParseDict maps a config string to a dictionary. Empty selects IPA.
func ParseDict(s string) (Dict, error) {
	switch strings.ToLower(s) {
	case "", "ipa":
		return DictIPA, nil
	case "uni", "unidic":
		return DictUni, nil
	}
	return 0, fmt.Errorf("unknown dictionary %q", s)
}

// KagomeTagger segments Japanese sentences with kagome and reports each
// morpheme's leading POS feature (名詞, 形容詞, ...). BOS/EOS sentinels
// and empty surfaces never reach the caller.
type KagomeTagger struct {
	tok  *tokenizer.Tokenizer
	mode types.SplitMode
}

func NewKagomeTagger(d Dict, mode types.SplitMode) (*KagomeTagger, error) {
	if _, err := kagomeMode(mode); err != nil {
		return nil, err
	}
	var sysDict *kdict.Dict
	switch d {
	case DictIPA:
		sysDict = ipa.Dict()
	case DictUni:
		sysDict = uni.Dict()
	default:
		return nil, fmt.Errorf("%w: unknown dictionary %d", types.ErrAnalyzerInit, d)
	}
	tok, err := tokenizer.New(sysDict, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAnalyzerInit, err)
	}
	return &KagomeTagger{tok: tok, mode: mode}, nil
}

// Tag analyzes with the mode fixed at construction.
func (k *KagomeTagger) Tag(sentence string) ([]types.Token, error) {
	return k.TagMode(sentence, k.mode)
}

// TagMode analyzes with an explicit split mode, A coarsest to C finest.
func (k *KagomeTagger) TagMode(sentence string, mode types.SplitMode) ([]types.Token, error) {
	tm, err := kagomeMode(mode)
	if err != nil {
		return nil, err
	}
	out := []types.Token{}
	for _, m := range k.tok.Analyze(sentence, tm) {
		if m.Class == tokenizer.DUMMY {
			continue
		}
		switch m.Surface {
		case "", "BOS", "EOS":
			continue
		}
		pos := ""
		if features := m.POS(); len(features) > 0 {
			pos = features[0]
		}
		out = append(out, types.Token{Text: m.Surface, POS: pos})
	}
	return out, nil
}

func kagomeMode(mode types.SplitMode) (tokenizer.TokenizeMode, error) {
	switch mode {
	case types.SplitA:
		return tokenizer.Normal, nil
	case types.SplitB:
		return tokenizer.Search, nil
	case types.SplitC:
		return tokenizer.Extended, nil
	}
	return 0, fmt.Errorf("%w: split mode %s", types.ErrAnalyzerInit, mode)
}
