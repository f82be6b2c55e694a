package tagger

import (
	"fmt"
	"strings"

	"github.com/yanyiwu/gojieba"

	"keyterm/internal/types"
)

// JiebaTagger tags Chinese sentences with jieba's POS mode. The handle
// owns a C allocation; call Free when done with it.
type JiebaTagger struct {
	jieba *gojieba.Jieba
}

func NewJiebaTagger() *JiebaTagger {
	return &JiebaTagger{jieba: gojieba.NewJieba()}
}

func (j *JiebaTagger) Free() {
	if j.jieba != nil {
		j.jieba.Free()
		j.jieba = nil
	}
}

func (j *JiebaTagger) Tag(sentence string) ([]types.Token, error) {
	if j.jieba == nil {
		return nil, fmt.Errorf("%w: tagger freed", types.ErrTaggerUnavailable)
	}
	out := []types.Token{}
	for _, pair := range j.jieba.Tag(sentence) {
		// jieba emits "word/tag"; the word itself may contain slashes,
		// so split on the last one.
		i := strings.LastIndex(pair, "/")
		if i <= 0 || i == len(pair)-1 {
			return nil, fmt.Errorf("%w: jieba pair %q", types.ErrMalformedOutput, pair)
		}
		out = append(out, types.Token{Text: pair[:i], POS: pair[i+1:]})
	}
	return out, nil
}
