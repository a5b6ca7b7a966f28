package session

import (
	"fmt"
	"math/rand/v2"
)

// DefaultChoiceCount is the number of options in a multiple choice question.
const DefaultChoiceCount = 4

// GenerateDistractors builds a shuffled set of count choices containing
// correct plus count-1 distinct values drawn at random from pool. Pool
// entries equal to correct are never drawn. If the pool holds fewer
// eligible distinct values than needed the error is
// ErrInsufficientDistractors. A nil rng uses the package source.
func GenerateDistractors(correct string, pool []string, count int, rng *rand.Rand) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: choice count %d", ErrInvalidArgument, count)
	}

	eligible := make([]string, 0, len(pool))
	seen := map[string]bool{correct: true}
	for _, v := range pool {
		if !seen[v] {
			seen[v] = true
			eligible = append(eligible, v)
		}
	}
	need := count - 1
	if len(eligible) < need {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientDistractors, need, len(eligible))
	}

	intn := rand.IntN
	shuffle := rand.Shuffle
	if rng != nil {
		intn = rng.IntN
		shuffle = rng.Shuffle
	}

	// Partial Fisher-Yates over the distinct values: need draws, no retries.
	for i := 0; i < need; i++ {
		j := i + intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	choices := append([]string{correct}, eligible[:need]...)

	shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices, nil
}
