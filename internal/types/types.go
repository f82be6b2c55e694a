package types

import (
	"errors"
	"fmt"
	"strings"
)

// Token is one surface form produced by a tagging adapter together with
// the raw tag from that tagger's native tagset.
type Token struct {
	Text string
	POS  string
}

// Symbol is the collapsed three-letter alphabet the phrase matcher runs
// over. Every raw tag maps to exactly one symbol.
type Symbol byte

const (
	SymAdjective Symbol = 'J'
	SymNoun      Symbol = 'N'
	SymOther     Symbol = 'O'
)

type Language uint8

const (
	LangEN Language = iota
	LangJA
	LangZH
)

func (l Language) String() string {
	switch l {
	case LangEN:
		return "en"
	case LangJA:
		return "ja"
	case LangZH:
		return "zh"
	}
	return "unknown"
}

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "en", "english":
		return LangEN, nil
	case "ja", "jp", "japanese":
		return LangJA, nil
	case "zh", "cn", "chinese":
		return LangZH, nil
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

// SplitMode selects the segmentation granularity of the Japanese
// analyzer, A coarsest to C finest. The zero value is unset.
type SplitMode uint8

const (
	SplitA SplitMode = iota + 1
	SplitB
	SplitC
)

func (m SplitMode) String() string {
	switch m {
	case SplitA:
		return "A"
	case SplitB:
		return "B"
	case SplitC:
		return "C"
	}
	return "unset"
}

func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ToUpper(s) {
	case "A":
		return SplitA, nil
	case "B":
		return SplitB, nil
	case "C":
		return SplitC, nil
	}
	return 0, fmt.Errorf("unknown split mode %q", s)
}

// Sentinel errors shared by the tagging adapters and the matcher. Wrap
// with fmt.Errorf("%w: ...") so callers can test with errors.Is.
var (
	ErrTaggerUnavailable = errors.New("tagger unavailable")
	ErrAnalyzerInit      = errors.New("analyzer initialization failed")
	ErrMalformedOutput   = errors.New("malformed tagger output")
)

type Tagger interface {
	Tag(sentence string) ([]Token, error)
}

type Filter interface {
	Gen(tokens []Token) []Token
}

type Cache interface {
	Get(key uint64) ([]Token, bool)
	Put(key uint64, tokens []Token)
	Len() int
	Clear()
}
