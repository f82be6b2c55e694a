// Package keyterm extracts keyword tokens and adjective-noun phrases
// from English, Japanese and Chinese sentences. Each sentence is POS
// tagged by a per-language adapter, the raw tags collapse to a small
// symbol alphabet, and maximal (adjective)*(noun)+ runs become joined
// phrases.
package keyterm

import (
	"fmt"
	"net/http"
	"sync"

	"keyterm/internal/cache"
	"keyterm/internal/classify"
	"keyterm/internal/common"
	"keyterm/internal/config"
	"keyterm/internal/filter"
	"keyterm/internal/filter/en"
	"keyterm/internal/phrase"
	"keyterm/internal/tagger"
	"keyterm/internal/types"
)

type (
	Token     = types.Token
	Language  = types.Language
	SplitMode = types.SplitMode
)

const (
	LangEN = types.LangEN
	LangJA = types.LangJA
	LangZH = types.LangZH

	SplitA = types.SplitA
	SplitB = types.SplitB
	SplitC = types.SplitC
)

// Sentinel errors, testable with errors.Is.
var (
	ErrTaggerUnavailable = types.ErrTaggerUnavailable
	ErrAnalyzerInit      = types.ErrAnalyzerInit
	ErrMalformedOutput   = types.ErrMalformedOutput
)

func ParseLanguage(s string) (Language, error)   { return types.ParseLanguage(s) }
func ParseSplitMode(s string) (SplitMode, error) { return types.ParseSplitMode(s) }

// Result holds both outputs of a single extraction: the POS-filtered
// surface forms and the matched phrases, each in sentence order with
// duplicates preserved.
type Result struct {
	Tokens  []string
	Phrases []string
}

// DefaultENPosFilter returns the default English allow set, adjectives
// and nouns of the Penn Treebank tagset. A fresh slice every call, safe
// for callers to modify.
func DefaultENPosFilter() []string {
	return []string{"JJ", "JJR", "JJS", "NN", "NNS", "NNP", "NNPS"}
}

// DefaultJAPosFilter returns the default Japanese allow set.
func DefaultJAPosFilter() []string {
	return []string{"名詞", "形容詞"}
}

// DefaultZHPosFilter returns the default Chinese allow set.
func DefaultZHPosFilter() []string {
	return []string{"n", "nr", "ns", "nt", "nz", "ng", "a", "ad", "an", "ag"}
}

// Options configures an Extractor. The zero value selects the in-process
// English tagger, the IPA dictionary with split mode C for Japanese, a
// phrase cap of three tokens and no caching.
type Options struct {
	// TaggerURL points at a CoreNLP compatible server for English
	// tagging. Empty selects the in-process prose tagger.
	TaggerURL  string
	HTTPClient *http.Client

	JaDict  string    // "ipa" (default) or "uni"
	JaSplit SplitMode // segmentation granularity, default SplitC

	MaxSpan   int  // phrase length cap in tokens, default 3
	CacheSize int  // tag result cache capacity, 0 disables caching
	StripHTML bool // reduce markup to text before tagging
	Lowercase bool // lowercase the English token output
	Stem      bool // snowball-stem the English token output

	// Per-language overrides for the nil-posFilter defaults.
	ENPosFilter []string
	JAPosFilter []string
	ZHPosFilter []string

	// Adapter overrides, used by tests and custom deployments.
	ENTagger Tagger
	JATagger Tagger
	ZHTagger Tagger
}

// Tagger is the adapter contract every language backend satisfies.
type Tagger = types.Tagger

// Extractor is the package entry point. Safe for concurrent use as long
// as the underlying tagger handles tolerate concurrent calls; the stock
// adapters do.
type Extractor struct {
	en types.Tagger
	ja types.Tagger

	zh     types.Tagger
	zhOwn  *tagger.JiebaTagger
	zhOnce sync.Once

	enExtra []types.Filter
	tags    types.Cache

	enPos []string
	jaPos []string
	zhPos []string

	maxSpan int
	strip   bool
	jaMode  SplitMode
}

func New(opts Options) (*Extractor, error) {
	e := &Extractor{
		maxSpan: opts.MaxSpan,
		strip:   opts.StripHTML,
		enPos:   common.CopyStrings(opts.ENPosFilter),
		jaPos:   common.CopyStrings(opts.JAPosFilter),
		zhPos:   common.CopyStrings(opts.ZHPosFilter),
	}
	if e.maxSpan <= 0 {
		e.maxSpan = phrase.DefaultMaxSpan
	}

	e.en = opts.ENTagger
	if e.en == nil {
		if opts.TaggerURL != "" {
			remote := tagger.NewRemoteTagger(opts.TaggerURL)
			remote.HTTPClient = opts.HTTPClient
			e.en = remote
		} else {
			e.en = tagger.NewProseTagger()
		}
	}

	e.jaMode = opts.JaSplit
	if e.jaMode == 0 {
		e.jaMode = SplitC
	}
	e.ja = opts.JATagger
	if e.ja == nil {
		d, err := tagger.ParseDict(opts.JaDict)
		if err != nil {
			return nil, err
		}
		k, err := tagger.NewKagomeTagger(d, e.jaMode)
		if err != nil {
			return nil, err
		}
		e.ja = k
	}

	// the jieba handle owns a C allocation; built on first use
	e.zh = opts.ZHTagger

	if opts.CacheSize > 0 {
		e.tags = cache.NewTagCache(opts.CacheSize)
	}
	if opts.Lowercase {
		e.enExtra = append(e.enExtra, en.LowercaseFilter{})
	}
	if opts.Stem {
		e.enExtra = append(e.enExtra, en.StemmerFilter{})
	}
	return e, nil
}

// NewFromConfig builds an Extractor from a YAML config file.
func NewFromConfig(path string) (*Extractor, error) {
	opts, err := LoadOptions(path)
	if err != nil {
		return nil, err
	}
	return New(opts)
}

// LoadOptions maps a YAML config file onto Options.
func LoadOptions(path string) (Options, error) {
	c, err := config.Load(path)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		TaggerURL:   c.English.TaggerURL,
		JaDict:      c.Japanese.Dict,
		MaxSpan:     c.MaxSpan,
		CacheSize:   c.CacheSize,
		StripHTML:   c.StripHTML,
		Lowercase:   c.English.Lowercase,
		Stem:        c.English.Stem,
		ENPosFilter: c.English.PosFilter,
		JAPosFilter: c.Japanese.PosFilter,
		ZHPosFilter: c.Chinese.PosFilter,
	}
	if c.Japanese.SplitMode != "" {
		mode, err := ParseSplitMode(c.Japanese.SplitMode)
		if err != nil {
			return Options{}, err
		}
		opts.JaSplit = mode
	}
	return opts, nil
}

// Close releases externally backed tagger handles. Do not call while
// extractions are in flight.
func (e *Extractor) Close() error {
	if e.zhOwn != nil {
		e.zhOwn.Free()
		e.zhOwn = nil
	}
	return nil
}

// TokenizeEN tags an English sentence and returns the filtered tokens
// plus the matched phrases. A nil posFilter selects the configured
// default allow set.
func (e *Extractor) TokenizeEN(sentence string, posFilter []string) (Result, error) {
	if posFilter == nil {
		if posFilter = e.enPos; posFilter == nil {
			posFilter = DefaultENPosFilter()
		}
	}
	return e.extract(types.LangEN, e.en, sentence, posFilter, e.enExtra)
}

// TokenizeJA tags a Japanese sentence and returns the filtered tokens
// plus the matched phrases. A nil posFilter selects the configured
// default allow set.
func (e *Extractor) TokenizeJA(sentence string, posFilter []string) (Result, error) {
	if posFilter == nil {
		if posFilter = e.jaPos; posFilter == nil {
			posFilter = DefaultJAPosFilter()
		}
	}
	return e.extract(types.LangJA, e.ja, sentence, posFilter, nil)
}

// TokenizeZH tags a Chinese sentence and returns the filtered tokens
// plus the matched phrases. The jieba handle is created on first use.
func (e *Extractor) TokenizeZH(sentence string, posFilter []string) (Result, error) {
	if posFilter == nil {
		if posFilter = e.zhPos; posFilter == nil {
			posFilter = DefaultZHPosFilter()
		}
	}
	return e.extract(types.LangZH, e.zhTagger(), sentence, posFilter, nil)
}

// Tokenize dispatches on language.
func (e *Extractor) Tokenize(lang Language, sentence string, posFilter []string) (Result, error) {
	switch lang {
	case types.LangEN:
		return e.TokenizeEN(sentence, posFilter)
	case types.LangJA:
		return e.TokenizeJA(sentence, posFilter)
	case types.LangZH:
		return e.TokenizeZH(sentence, posFilter)
	}
	return Result{}, fmt.Errorf("unknown language %v", lang)
}

func (e *Extractor) zhTagger() types.Tagger {
	e.zhOnce.Do(func() {
		if e.zh == nil {
			e.zhOwn = tagger.NewJiebaTagger()
			e.zh = e.zhOwn
		}
	})
	return e.zh
}

func (e *Extractor) extract(lang types.Language, tg types.Tagger, sentence string, posFilter []string, extra []types.Filter) (Result, error) {
	if e.strip {
		sentence = common.StripHTML(sentence)
	}
	tokens, err := e.tagged(lang, tg, sentence)
	if err != nil {
		return Result{}, err
	}

	symbols := classify.Symbols(tokens, lang)
	phrases, err := phrase.Extract(tokens, symbols, e.maxSpan)
	if err != nil {
		return Result{}, err
	}

	kept := filter.NewPOSFilter(posFilter...).Gen(tokens)
	kept = filter.Chain(kept, extra...)

	return Result{Tokens: filter.Texts(kept), Phrases: phrases}, nil
}

func (e *Extractor) tagged(lang types.Language, tg types.Tagger, sentence string) ([]types.Token, error) {
	if e.tags == nil {
		return tg.Tag(sentence)
	}
	key := common.HashKey(lang.String(), e.jaMode.String(), sentence)
	if tokens, ok := e.tags.Get(key); ok {
		return tokens, nil
	}
	tokens, err := tg.Tag(sentence)
	if err != nil {
		return nil, err
	}
	e.tags.Put(key, tokens)
	return tokens, nil
}

// Batch extracts from independent sentences concurrently, fanning out
// over worker goroutines with stride scheduling. Results align with the
// input; every sentence is attempted and the first error encountered is
// returned once all workers drain.
func (e *Extractor) Batch(lang Language, sentences []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(sentences) {
		workers = len(sentences)
	}

	results := make([]Result, len(sentences))
	errs := make([]error, len(sentences))

	var wg sync.WaitGroup
	for seq := 0; seq < workers; seq++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			for i := seq; i < len(sentences); i += workers {
				res, err := e.Tokenize(lang, sentences[i], nil)
				if err != nil {
					common.WARN("batch sentence %d: %v", i, err)
					errs[i] = err
					continue
				}
				results[i] = res
			}
		}(seq)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
