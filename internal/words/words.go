// internal/words/words.go
//
// Lexicon provider for the tournament engine.
//
// Responsibilities:
//   - Load word lists from plain-text or CSV corpora, or fall back to
//     embedded mini corpora per word length.
//   - Build a probability distribution over the vocabulary in one of two
//     modes: uniform, or sigmoid-smoothed corpus frequency.
//
// Corpus formats:
//   - ".txt":  one word per line (all counts 1, so frequency mode
//              degenerates to uniform).
//   - ".csv":  header "word,count" with raw corpus frequencies.
//
// Constraints:
//   • Words are normalized to lowercase with accents stripped.
//   • Only words of exactly the requested length are kept.
//   • The resulting vocabulary is sorted and duplicate-free.

package words

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Probability modes.
const (
	ModeUniform   = "uniform"
	ModeFrequency = "frequency"
)

// Steepness of the sigmoid used to squash log-frequencies.
const sigmoidSteepness = 1.5

// Lexicon is a word list with an associated probability distribution.
// Immutable for the duration of a tournament; safely shared by all
// concurrent episodes of a round.
type Lexicon struct {
	Words      []string           // sorted, duplicate-free
	Probs      map[string]float64 // word -> probability, sums to 1
	Mode       string             // ModeUniform or ModeFrequency
	WordLength int
}

// Load reads a corpus and builds a Lexicon for (wordLength, mode).
// An empty path falls back to the embedded mini corpus for that length.
// Returns an error for unknown modes, unreadable files, or lengths with
// no corpus — a round-setup failure, fatal for that round only.
func Load(path string, wordLength int, mode string) (*Lexicon, error) {
	if mode != ModeUniform && mode != ModeFrequency {
		return nil, fmt.Errorf("words: mode must be %q or %q, got %q", ModeUniform, ModeFrequency, mode)
	}

	var (
		list   []string
		counts map[string]int
		err    error
	)
	if path == "" {
		list, counts, err = loadEmbedded(wordLength)
	} else if strings.HasSuffix(strings.ToLower(path), ".csv") {
		list, counts, err = loadCSV(path, wordLength)
	} else {
		list, counts, err = loadTxt(path, wordLength)
	}
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("words: no %d-letter words found in %s", wordLength, pathLabel(path))
	}

	probs := make(map[string]float64, len(list))
	if mode == ModeUniform {
		p := 1.0 / float64(len(list))
		for _, w := range list {
			probs[w] = p
		}
	} else {
		probs = sigmoidWeights(list, counts, sigmoidSteepness)
	}

	return &Lexicon{Words: list, Probs: probs, Mode: mode, WordLength: wordLength}, nil
}

// loadTxt reads one word per line; all counts are 1.
func loadTxt(path string, wordLength int) ([]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return scanLines(f, wordLength)
}

// scanLines normalizes, filters and dedupes words from a line-oriented reader.
func scanLines(r io.Reader, wordLength int) ([]string, map[string]int, error) {
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if len(w) != wordLength || !isLowerAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	sort.Strings(out)
	counts := make(map[string]int, len(out))
	for _, w := range out {
		counts[w] = 1
	}
	return out, counts, nil
}

// loadCSV reads a "word,count" CSV with a header row.
func loadCSV(path string, wordLength int) ([]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("words: read header of %s: %w", path, err)
	}
	wordCol, countCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "word":
			wordCol = i
		case "count":
			countCol = i
		}
	}
	if wordCol < 0 || countCol < 0 {
		return nil, nil, fmt.Errorf("words: %s must have word,count columns", path)
	}

	seen := make(map[string]struct{})
	var out []string
	counts := make(map[string]int)
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("words: read %s: %w", path, err)
		}
		if len(rec) <= wordCol || len(rec) <= countCol {
			continue
		}
		w := Normalize(rec[wordCol])
		if len(w) != wordLength || !isLowerAlpha(w) {
			continue
		}
		c, err := strconv.Atoi(strings.TrimSpace(rec[countCol]))
		if err != nil || c <= 0 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		counts[w] = c
	}
	sort.Strings(out)
	return out, counts, nil
}

// sigmoidWeights maps raw counts to probabilities: sigmoid of log-count
// centered on the mean log-count, then normalized to sum to 1.
func sigmoidWeights(list []string, counts map[string]int, steepness float64) map[string]float64 {
	logCounts := make(map[string]float64, len(list))
	var mu float64
	for _, w := range list {
		lc := math.Log(float64(counts[w]) + 1)
		logCounts[w] = lc
		mu += lc
	}
	mu /= float64(len(list))

	weights := make(map[string]float64, len(list))
	var total float64
	for _, w := range list {
		v := sigmoid(steepness * (logCounts[w] - mu))
		weights[w] = v
		total += v
	}
	for w := range weights {
		weights[w] /= total
	}
	return weights
}

// sigmoid with the numerically stable split for negative inputs.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	ex := math.Exp(x)
	return ex / (1.0 + ex)
}

// Normalize lowercases, trims, and strips accents from a raw corpus token.
func Normalize(s string) string {
	return stripAccents(strings.TrimSpace(strings.ToLower(s)))
}

// accentMap covers the accented letters that occur in Spanish corpora.
var accentMap = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
	'à': 'a', 'è': 'e', 'ì': 'i', 'ò': 'o', 'ù': 'u',
}

func stripAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if plain, ok := accentMap[r]; ok {
			return plain
		}
		return r
	}, s)
}

// isLowerAlpha reports whether s is all lowercase ASCII letters.
func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func pathLabel(path string) string {
	if path == "" {
		return "embedded corpus"
	}
	return path
}
