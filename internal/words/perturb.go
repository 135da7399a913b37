// internal/words/perturb.go
//
// Distribution perturbation ("shock") for robustness testing.
// Agents only ever see the resulting numbers via their game config; the
// seed and noise magnitude are never exposed.

package words

import (
	"math/rand"
	"sort"
)

// probFloor keeps perturbed probabilities strictly positive.
const probFloor = 1e-12

// Perturb applies bounded multiplicative noise to a probability
// distribution and renormalizes it to sum to 1.
//
// Each probability p is multiplied by (1 + e) with e drawn uniformly
// from (-noiseScale, +noiseScale). The overall shape of the distribution
// is preserved while the exact values become unpredictable.
//
// Deterministic for a given seed: words are visited in sorted order so
// the same seed always assigns the same noise to the same word.
func Perturb(probs map[string]float64, noiseScale float64, seed int64) map[string]float64 {
	keys := make([]string, 0, len(probs))
	for w := range probs {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	rng := rand.New(rand.NewSource(seed))
	out := make(map[string]float64, len(probs))
	var total float64
	for _, w := range keys {
		factor := 1.0 + (rng.Float64()*2-1)*noiseScale
		v := probs[w] * factor
		if v < probFloor {
			v = probFloor
		}
		out[w] = v
		total += v
	}
	for w := range out {
		out[w] /= total
	}
	return out
}
