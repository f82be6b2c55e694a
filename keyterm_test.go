package keyterm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"keyterm/internal/types"

	"github.com/stretchr/testify/assert"
)

type fakeTagger struct {
	tokens []types.Token
	err    error
	calls  int
}

func (f *fakeTagger) Tag(string) ([]types.Token, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

// echoTagger derives a single noun token from the sentence itself.
type echoTagger struct {
	mu   sync.Mutex
	seen []string
}

func (e *echoTagger) Tag(sentence string) ([]types.Token, error) {
	e.mu.Lock()
	e.seen = append(e.seen, sentence)
	e.mu.Unlock()
	return []types.Token{{Text: sentence, POS: "NN"}}, nil
}

func enSentence() []types.Token {
	return []types.Token{
		{Text: "The", POS: "DT"},
		{Text: "quick", POS: "JJ"},
		{Text: "brown", POS: "JJ"},
		{Text: "fox", POS: "NN"},
		{Text: "jumps", POS: "VBZ"},
		{Text: "over", POS: "IN"},
		{Text: "the", POS: "DT"},
		{Text: "lazy", POS: "JJ"},
		{Text: "dog", POS: "NN"},
	}
}

func newForTest(t *testing.T, opts Options) *Extractor {
	t.Helper()
	if opts.ENTagger == nil {
		opts.ENTagger = &fakeTagger{}
	}
	if opts.JATagger == nil {
		opts.JATagger = &fakeTagger{}
	}
	if opts.ZHTagger == nil {
		opts.ZHTagger = &fakeTagger{}
	}
	e, err := New(opts)
	assert.Nil(t, err)
	return e
}

func TestTokenizeEN(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &fakeTagger{tokens: enSentence()}})

	var (
		out = Result{
			Tokens:  []string{"quick", "brown", "fox", "lazy", "dog"},
			Phrases: []string{"quick_brown_fox", "lazy_dog"},
		}
	)
	got, err := e.TokenizeEN("The quick brown fox jumps over the lazy dog", nil)
	assert.Nil(t, err)
	assert.Equal(t, out, got)
}

func TestTokenizeENCustomFilter(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &fakeTagger{tokens: enSentence()}})

	got, err := e.TokenizeEN("ignored", []string{"NN"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"fox", "dog"}, got.Tokens)
	// phrases ignore the allow set
	assert.Equal(t, []string{"quick_brown_fox", "lazy_dog"}, got.Phrases)
}

func TestTokenizeENEmptyFilterDropsAll(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &fakeTagger{tokens: enSentence()}})

	got, err := e.TokenizeEN("ignored", []string{})
	assert.Nil(t, err)
	assert.Empty(t, got.Tokens)
	assert.NotEmpty(t, got.Phrases)
}

func TestTokenizeENOverLongRun(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &fakeTagger{tokens: []types.Token{
		{Text: "big", POS: "JJ"},
		{Text: "old", POS: "JJ"},
		{Text: "red", POS: "JJ"},
		{Text: "brick", POS: "JJ"},
		{Text: "house", POS: "NN"},
	}}})

	got, err := e.TokenizeEN("ignored", nil)
	assert.Nil(t, err)
	assert.Empty(t, got.Phrases)
	assert.Equal(t, 5, len(got.Tokens))
}

func TestTokenizeENWiderMaxSpan(t *testing.T) {
	e := newForTest(t, Options{
		MaxSpan: 5,
		ENTagger: &fakeTagger{tokens: []types.Token{
			{Text: "big", POS: "JJ"},
			{Text: "old", POS: "JJ"},
			{Text: "red", POS: "JJ"},
			{Text: "brick", POS: "JJ"},
			{Text: "house", POS: "NN"},
		}},
	})

	got, err := e.TokenizeEN("ignored", nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"big_old_red_brick_house"}, got.Phrases)
}

func TestTokenizeJA(t *testing.T) {
	e := newForTest(t, Options{JATagger: &fakeTagger{tokens: []types.Token{
		{Text: "美しい", POS: "形容詞"},
		{Text: "花", POS: "名詞"},
		{Text: "が", POS: "助詞"},
		{Text: "咲く", POS: "動詞"},
	}}})

	var (
		out = Result{
			Tokens:  []string{"美しい", "花"},
			Phrases: []string{"美しい_花"},
		}
	)
	got, err := e.TokenizeJA("美しい花が咲く", nil)
	assert.Nil(t, err)
	assert.Equal(t, out, got)
}

func TestTokenizeZH(t *testing.T) {
	e := newForTest(t, Options{ZHTagger: &fakeTagger{tokens: []types.Token{
		{Text: "美丽", POS: "a"},
		{Text: "花", POS: "n"},
		{Text: "开", POS: "v"},
	}}})

	got, err := e.TokenizeZH("美丽花开", nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"美丽", "花"}, got.Tokens)
	assert.Equal(t, []string{"美丽_花"}, got.Phrases)
}

func TestTokenizeEmptySentence(t *testing.T) {
	e := newForTest(t, Options{})

	got, err := e.TokenizeEN("", nil)
	assert.Nil(t, err)
	assert.Empty(t, got.Tokens)
	assert.Empty(t, got.Phrases)
}

func TestTokenizeDispatch(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &fakeTagger{tokens: enSentence()}})

	got, err := e.Tokenize(LangEN, "ignored", nil)
	assert.Nil(t, err)
	assert.NotEmpty(t, got.Tokens)

	_, err = e.Tokenize(Language(99), "ignored", nil)
	assert.NotNil(t, err)
}

func TestTaggerErrorPropagates(t *testing.T) {
	wrapped := fmt.Errorf("%w: post failed", ErrTaggerUnavailable)
	e := newForTest(t, Options{ENTagger: &fakeTagger{err: wrapped}})

	_, err := e.TokenizeEN("anything", nil)
	assert.True(t, errors.Is(err, ErrTaggerUnavailable))
}

func TestDefaultFiltersFreshPerCall(t *testing.T) {
	a := DefaultENPosFilter()
	a[0] = "mutated"
	assert.Equal(t, "JJ", DefaultENPosFilter()[0])

	b := DefaultJAPosFilter()
	b[0] = "mutated"
	assert.Equal(t, "名詞", DefaultJAPosFilter()[0])

	c := DefaultZHPosFilter()
	c[0] = "mutated"
	assert.Equal(t, "n", DefaultZHPosFilter()[0])
}

func TestConfiguredPosFilterOverride(t *testing.T) {
	e := newForTest(t, Options{
		ENPosFilter: []string{"NN"},
		ENTagger:    &fakeTagger{tokens: enSentence()},
	})

	got, err := e.TokenizeEN("ignored", nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"fox", "dog"}, got.Tokens)

	// explicit filter still wins over the configured one
	got, err = e.TokenizeEN("ignored", []string{"JJ"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"quick", "brown", "lazy"}, got.Tokens)
}

func TestCacheSkipsRepeatTagging(t *testing.T) {
	fake := &fakeTagger{tokens: enSentence()}
	e := newForTest(t, Options{CacheSize: 8, ENTagger: fake})

	first, err := e.TokenizeEN("same sentence", nil)
	assert.Nil(t, err)
	second, err := e.TokenizeEN("same sentence", nil)
	assert.Nil(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, first, second)

	_, err = e.TokenizeEN("different sentence", nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, fake.calls)
}

func TestCacheKeySeparatesLanguages(t *testing.T) {
	enFake := &fakeTagger{tokens: []types.Token{{Text: "fox", POS: "NN"}}}
	jaFake := &fakeTagger{tokens: []types.Token{{Text: "花", POS: "名詞"}}}
	e := newForTest(t, Options{CacheSize: 8, ENTagger: enFake, JATagger: jaFake})

	enGot, err := e.TokenizeEN("花", nil)
	assert.Nil(t, err)
	jaGot, err := e.TokenizeJA("花", nil)
	assert.Nil(t, err)

	assert.Equal(t, []string{"fox"}, enGot.Tokens)
	assert.Equal(t, []string{"花"}, jaGot.Tokens)
	assert.Equal(t, 1, enFake.calls)
	assert.Equal(t, 1, jaFake.calls)
}

func TestStripHTMLOption(t *testing.T) {
	echo := &echoTagger{}
	e := newForTest(t, Options{StripHTML: true, ENTagger: echo})

	got, err := e.TokenizeEN("<p><b>fox</b></p>", nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"fox"}, echo.seen)
	assert.Equal(t, []string{"fox"}, got.Tokens)
}

func TestLowercaseAndStemOptions(t *testing.T) {
	e := newForTest(t, Options{
		Lowercase: true,
		Stem:      true,
		ENTagger: &fakeTagger{tokens: []types.Token{
			{Text: "Lazy", POS: "JJ"},
			{Text: "Cats", POS: "NNS"},
		}},
	})

	got, err := e.TokenizeEN("ignored", nil)
	assert.Nil(t, err)
	// token output is normalized, phrase surfaces are not
	assert.Equal(t, []string{"lazi", "cat"}, got.Tokens)
	assert.Equal(t, []string{"Lazy_Cats"}, got.Phrases)
}

func TestBatchOrder(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &echoTagger{}})

	sentences := []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6"}
	results, err := e.Batch(LangEN, sentences, 3)
	assert.Nil(t, err)
	assert.Equal(t, len(sentences), len(results))
	for i, r := range results {
		assert.Equal(t, []string{sentences[i]}, r.Tokens)
		assert.Equal(t, []string{sentences[i]}, r.Phrases)
	}
}

func TestBatchEmpty(t *testing.T) {
	e := newForTest(t, Options{})

	results, err := e.Batch(LangEN, nil, 4)
	assert.Nil(t, err)
	assert.Empty(t, results)
}

type flakyTagger struct {
	failOn string
}

func (f *flakyTagger) Tag(sentence string) ([]types.Token, error) {
	if sentence == f.failOn {
		return nil, fmt.Errorf("%w: refused", types.ErrTaggerUnavailable)
	}
	return []types.Token{{Text: sentence, POS: "NN"}}, nil
}

func TestBatchPartialFailure(t *testing.T) {
	e := newForTest(t, Options{ENTagger: &flakyTagger{failOn: "bad"}})

	results, err := e.Batch(LangEN, []string{"ok0", "bad", "ok2"}, 2)
	assert.True(t, errors.Is(err, ErrTaggerUnavailable))
	assert.Equal(t, 3, len(results))
	assert.Equal(t, []string{"ok0"}, results[0].Tokens)
	assert.Empty(t, results[1].Tokens)
	assert.Equal(t, []string{"ok2"}, results[2].Tokens)
}

func TestNewBadJaDict(t *testing.T) {
	_, err := New(Options{JaDict: "mecab", ENTagger: &fakeTagger{}})
	assert.NotNil(t, err)
}

func TestClose(t *testing.T) {
	e := newForTest(t, Options{})
	assert.Nil(t, e.Close())
	assert.Nil(t, e.Close())
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyterm.yaml")
	assert.Nil(t, os.WriteFile(path, []byte(`
english:
  tagger_url: http://localhost:9000
japanese:
  split_mode: B
max_span: 4
cache_size: 16
`), 0o644))

	opts, err := LoadOptions(path)
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:9000", opts.TaggerURL)
	assert.Equal(t, SplitB, opts.JaSplit)
	assert.Equal(t, 4, opts.MaxSpan)
	assert.Equal(t, 16, opts.CacheSize)
}

func TestLoadOptionsBadSplitMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyterm.yaml")
	assert.Nil(t, os.WriteFile(path, []byte("japanese:\n  split_mode: D\n"), 0o644))

	_, err := LoadOptions(path)
	assert.NotNil(t, err)
}
