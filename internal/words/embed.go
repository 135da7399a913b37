// internal/words/embed.go
//
// Embedded mini corpora so the engine runs with no external word lists.
// One file per supported word length; plain text, one word per line.

package words

import (
	"embed"
	"fmt"
)

//go:embed corpus/mini_spanish_4.txt corpus/mini_spanish_5.txt corpus/mini_spanish_6.txt
var corpusFS embed.FS

// loadEmbedded reads the built-in mini corpus for wordLength.
// Lengths without an embedded file are a configuration error.
func loadEmbedded(wordLength int) ([]string, map[string]int, error) {
	name := fmt.Sprintf("corpus/mini_spanish_%d.txt", wordLength)
	f, err := corpusFS.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("words: no embedded corpus for %d-letter words", wordLength)
	}
	defer f.Close()
	return scanLines(f, wordLength)
}
