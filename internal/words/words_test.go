package words

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func probSum(probs map[string]float64) float64 {
	var s float64
	for _, p := range probs {
		s += p
	}
	return s
}

func TestLoadTxtUniform(t *testing.T) {
	path := writeFile(t, "words.txt", "Mesa\ngato\nGATO\nperro\ncasa\nmás\nxy\n")
	lex, err := Load(path, 4, ModeUniform)
	require.NoError(t, err)

	// "perro" has 5 letters, "xy" has 2, "GATO" duplicates "gato",
	// "más" strips to "mas" (3 letters).
	assert.Equal(t, []string{"casa", "gato", "mesa"}, lex.Words)
	assert.InDelta(t, 1.0, probSum(lex.Probs), 1e-9)
	for _, w := range lex.Words {
		assert.InDelta(t, 1.0/3.0, lex.Probs[w], 1e-9)
	}
}

func TestLoadCSVFrequency(t *testing.T) {
	path := writeFile(t, "words.csv",
		"word,count\ncasa,1000\ngato,10\nmesa,10\nperro,5\nbad,0\n")
	lex, err := Load(path, 4, ModeFrequency)
	require.NoError(t, err)

	assert.Equal(t, []string{"casa", "gato", "mesa"}, lex.Words)
	assert.InDelta(t, 1.0, probSum(lex.Probs), 1e-9)
	// Higher corpus count -> higher probability.
	assert.Greater(t, lex.Probs["casa"], lex.Probs["gato"])
	// Equal counts -> equal probability.
	assert.InDelta(t, lex.Probs["gato"], lex.Probs["mesa"], 1e-12)
}

func TestLoadEmbeddedFallback(t *testing.T) {
	for _, wl := range []int{4, 5, 6} {
		lex, err := Load("", wl, ModeUniform)
		require.NoError(t, err, "length %d", wl)
		assert.NotEmpty(t, lex.Words)
		for _, w := range lex.Words {
			assert.Len(t, w, wl)
		}
		assert.InDelta(t, 1.0, probSum(lex.Probs), 1e-9)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	_, err := Load("", 5, "zipf")
	assert.Error(t, err)
}

func TestLoadMissingCorpusLength(t *testing.T) {
	_, err := Load("", 9, ModeUniform)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 5, ModeUniform)
	assert.Error(t, err)
}

func TestNormalizeStripsAccents(t *testing.T) {
	assert.Equal(t, "cancion", Normalize("  CANCIÓN "))
	assert.Equal(t, "nino", Normalize("niño"))
}

func TestPerturbDeterministicPerSeed(t *testing.T) {
	lex, err := Load("", 5, ModeUniform)
	require.NoError(t, err)

	a := Perturb(lex.Probs, 0.05, 1234)
	b := Perturb(lex.Probs, 0.05, 1234)
	assert.Equal(t, a, b)

	c := Perturb(lex.Probs, 0.05, 9999)
	assert.NotEqual(t, a, c)
}

func TestPerturbRenormalizes(t *testing.T) {
	lex, err := Load("", 4, ModeUniform)
	require.NoError(t, err)

	out := Perturb(lex.Probs, 0.10, 7)
	assert.InDelta(t, 1.0, probSum(out), 1e-9)
	for w, p := range out {
		assert.Greater(t, p, 0.0, "word %s got non-positive probability", w)
		// 10% multiplicative noise stays close to the original even
		// after renormalization.
		assert.InDelta(t, lex.Probs[w], p, lex.Probs[w]*0.25)
	}
	// Original distribution untouched.
	assert.InDelta(t, 1.0/float64(len(lex.Words)), lex.Probs[lex.Words[0]], 1e-12)
}

func TestSigmoidStable(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-12)
	assert.False(t, math.IsNaN(sigmoid(-800)))
	assert.False(t, math.IsNaN(sigmoid(800)))
	assert.InDelta(t, 1.0, sigmoid(800), 1e-9)
	assert.InDelta(t, 0.0, sigmoid(-800), 1e-9)
}
