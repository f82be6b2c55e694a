package common

import (
	"keyterm/internal/types"

	"github.com/spaolacci/murmur3"
)

// keySep keeps ("ab","c") and ("a","bc") from folding to the same key.
const keySep = byte(0x1f)

// HashKey folds the given parts into a single 64-bit cache key.
func HashKey(parts ...string) uint64 {
	h := murmur3.New64()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{keySep})
		}
		h.Write([]byte(p))
	}
	return h.Sum64()
}

func CopyTokens(src []types.Token) []types.Token {
	if src == nil {
		return nil
	}
	dst := make([]types.Token, len(src))
	copy(dst, src)
	return dst
}

func CopyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
