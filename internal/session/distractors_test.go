package session

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerateDistractors(t *testing.T) {
	pool := []string{"Paris", "Berlin", "Madrid", "Rome", "Lisbon", "Vienna"}

	for i := 0; i < 50; i++ {
		got, err := GenerateDistractors("Paris", pool, 4, testRand())
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Contains(t, got, "Paris")

		sorted := slices.Clone(got)
		slices.Sort(sorted)
		assert.Len(t, slices.Compact(sorted), 4, "choices must be distinct: %v", got)
		for _, c := range got {
			assert.Contains(t, pool, c)
		}
	}
}

func TestGenerateDistractors_NilRand(t *testing.T) {
	got, err := GenerateDistractors("a", []string{"b", "c", "d"}, 4, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, got)
}

func TestGenerateDistractors_Insufficient(t *testing.T) {
	tests := []struct {
		name string
		pool []string
	}{
		{"only the correct answer", []string{"Paris", "Paris", "Paris"}},
		{"duplicates do not count", []string{"Rome", "Rome", "Paris", "Rome"}},
		{"empty pool", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateDistractors("Paris", tt.pool, 4, testRand())
			assert.ErrorIs(t, err, ErrInsufficientDistractors)
		})
	}
}

func TestGenerateDistractors_DuplicatesInPool(t *testing.T) {
	pool := []string{"Rome", "Rome", "Rome", "Rome", "Oslo", "Bern"}
	got, err := GenerateDistractors("Paris", pool, 4, testRand())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Paris", "Rome", "Oslo", "Bern"}, got)
}

func TestGenerateDistractors_SingleChoice(t *testing.T) {
	got, err := GenerateDistractors("Paris", nil, 1, testRand())
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, got)

	_, err = GenerateDistractors("Paris", nil, 0, testRand())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateDistractors_PoolDominatedByCorrect(t *testing.T) {
	pool := []string{"Rome", "Oslo", "Bern"}
	for i := 0; i < 2000; i++ {
		pool = append(pool, "Paris")
	}

	for seed := uint64(0); seed < 50; seed++ {
		got, err := GenerateDistractors("Paris", pool, 4, rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err, "seed %d", seed)
		assert.ElementsMatch(t, []string{"Paris", "Rome", "Oslo", "Bern"}, got)
	}
}

func TestGenerateDistractors_CoversEveryCandidate(t *testing.T) {
	pool := []string{"Berlin", "Madrid", "Rome", "Lisbon", "Vienna"}
	rng := testRand()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got, err := GenerateDistractors("Paris", pool, 3, rng)
		require.NoError(t, err)
		for _, c := range got {
			seen[c] = true
		}
	}
	for _, c := range pool {
		assert.True(t, seen[c], "%s was never drawn", c)
	}
}
