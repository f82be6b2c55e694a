package tagger

import (
	"keyterm/internal/types"

	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"
)

// ProseTagger tags English sentences in process with the perceptron
// model shipped by prose. Construct once and reuse; the model load is
// the expensive part.
type ProseTagger struct {
	words  *tokenize.TreebankWordTokenizer
	tagger *tag.PerceptronTagger
}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{
		words:  tokenize.NewTreebankWordTokenizer(),
		tagger: tag.NewPerceptronTagger(),
	}
}

func (p *ProseTagger) Tag(sentence string) ([]types.Token, error) {
	out := []types.Token{}
	for _, tk := range p.tagger.Tag(p.words.Tokenize(sentence)) {
		out = append(out, types.Token{Text: tk.Text, POS: tk.Tag})
	}
	return out, nil
}
