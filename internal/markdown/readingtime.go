package markdown

import (
	"bytes"
)

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 200

// WordCount counts whitespace separated words in text.
func WordCount(text []byte) int {
	return len(bytes.Fields(text))
}

// ReadingTime estimates minutes to read text, rounding up. The result is
// never below one minute.
func ReadingTime(text []byte, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := WordCount(text)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
