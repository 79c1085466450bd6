// Package tokens estimates prompt sizes so conversation history can be
// windowed before an exchange. The estimate is a heuristic, not a tokenizer:
// it only needs to be conservative enough to keep requests under the model's
// context limit.
package tokens

// Estimate approximates the token count of text.
// ASCII runs at ~4 characters per token; non-ASCII scripts (Devanagari,
// CJK, emoji) are weighted at ~1 character per token.
func Estimate(text string) int {
	weight := 0
	for _, r := range text {
		switch {
		case r <= 127:
			weight += 1
		default:
			weight += 4
		}
	}
	return (weight + 3) / 4
}
