// Package distractor builds multiple-choice option sets.
package distractor

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// MaxOptions is the size of a full option set, correct answer included.
const MaxOptions = 4

// Candidates collects the normalized answers of words on the given side,
// without duplicates and without any of the excluded values.
func Candidates(words []domain.Word, dir domain.Direction, exclude ...string) []string {
	pool := make([]string, 0, len(words))
	for _, w := range words {
		pool = append(pool, domain.NormalizeAll(w.Answers(dir))...)
	}
	return lo.Uniq(lo.Without(pool, domain.NormalizeAll(exclude)...))
}

// Options returns the normalized correct answer plus up to MaxOptions-1
// candidates drawn uniformly from pool, in random order. A short pool
// yields a short set; nothing is padded or repeated.
func Options(rng *rand.Rand, correct string, pool []string) []string {
	correct = domain.NormalizeText(correct)

	picked := lo.Uniq(lo.Without(domain.NormalizeAll(pool), correct))
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if len(picked) > MaxOptions-1 {
		picked = picked[:MaxOptions-1]
	}

	out := append(picked, correct)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Build returns the option set for asking w in direction dir. The pool is
// every other word's answers on that side, minus all answers accepted for w
// so that no distractor is secretly correct.
func Build(rng *rand.Rand, w domain.Word, words []domain.Word, dir domain.Direction) []string {
	others := lo.Filter(words, func(o domain.Word, _ int) bool { return o.ID != w.ID })
	pool := Candidates(others, dir, w.Answers(dir)...)
	return Options(rng, w.PrimaryAnswer(dir), pool)
}
