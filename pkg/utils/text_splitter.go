package utils

import "strings"

// SplitSentences splits a long string into chunks of at most maxChunkSize
// characters, breaking on sentence boundaries (. ! ? and newlines) so that
// no sentence is cut in half. Sentences longer than maxChunkSize become a
// chunk of their own. This is a simple character-based splitter. Ideally,
// use a tokenizer-aware splitter.
func SplitSentences(text string, maxChunkSize int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxChunkSize {
		return []string{text}
	}

	sentences := splitIntoSentences(text)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+1+len(sentence) > maxChunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// splitIntoSentences cuts text on terminal punctuation and newlines,
// keeping the punctuation attached to its sentence.
func splitIntoSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		case '\n':
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
