package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrompt returns a stable hex identifier for a model/prompt pair. It is
// used as the cache key and stored in the usage ledger in place of the text.
func HashPrompt(model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
