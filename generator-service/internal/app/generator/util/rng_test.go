package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRand_SameSeed_SameSequence(t *testing.T) {
	// Arrange
	a := NewRand(42)
	b := NewRand(42)

	// Act & Assert
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRand_DifferentSeeds_DifferentSequences(t *testing.T) {
	// Arrange
	a := NewRand(1)
	b := NewRand(2)

	// Act
	same := true
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}

	// Assert
	assert.False(t, same)
}

func TestRand_Uniform_WithinBounds(t *testing.T) {
	r := NewRand(7)

	for i := 0; i < 10000; i++ {
		v := r.Uniform(0.3, 0.7)
		assert.GreaterOrEqual(t, v, 0.3)
		assert.Less(t, v, 0.7)
	}
}

func TestRand_UniformInt_WithinBounds(t *testing.T) {
	r := NewRand(7)

	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := r.UniformInt(10, 100)
		require.GreaterOrEqual(t, v, 10)
		require.Less(t, v, 100)
		seen[v] = true
	}

	// На десяти тысячах выборок покрывается весь диапазон
	assert.Len(t, seen, 90)
}

func TestRand_Chance_Extremes(t *testing.T) {
	r := NewRand(7)

	for i := 0; i < 1000; i++ {
		assert.False(t, r.Chance(0))
		assert.True(t, r.Chance(1))
	}
}

func TestRand_Chance_Probability(t *testing.T) {
	// Arrange
	r := NewRand(42)
	const n = 100000

	// Act
	hits := 0
	for i := 0; i < n; i++ {
		if r.Chance(0.2) {
			hits++
		}
	}

	// Assert
	freq := float64(hits) / n
	assert.InDelta(t, 0.2, freq, 0.01)
}

func TestRand_LogNormal_Positive(t *testing.T) {
	r := NewRand(42)

	for i := 0; i < 10000; i++ {
		assert.Greater(t, r.LogNormal(3.5, 0.8), 0.0)
	}
}

func TestRand_Poisson_MeanCloseToLambda(t *testing.T) {
	// Arrange
	r := NewRand(42)
	const n = 5000
	const lambda = 50.0

	// Act
	sum := 0
	for i := 0; i < n; i++ {
		v := r.Poisson(lambda)
		require.GreaterOrEqual(t, v, 0)
		sum += v
	}

	// Assert
	mean := float64(sum) / n
	assert.InDelta(t, lambda, mean, 1.0)
}

func TestRand_Poisson_SmallLambda(t *testing.T) {
	r := NewRand(42)

	sum := 0
	const n = 5000
	for i := 0; i < n; i++ {
		sum += r.Poisson(2)
	}

	mean := float64(sum) / n
	assert.InDelta(t, 2.0, mean, 0.2)
}

func TestRand_Poisson_NonPositiveLambda(t *testing.T) {
	r := NewRand(42)

	assert.Equal(t, 0, r.Poisson(0))
	assert.Equal(t, 0, r.Poisson(-1))
}

func TestRand_WeightedInt_Proportions(t *testing.T) {
	// Arrange
	r := NewRand(42)
	choices := []WeightedChoice{
		{Value: 1, Weight: 0.6},
		{Value: 2, Weight: 0.2},
		{Value: 3, Weight: 0.1},
		{Value: 4, Weight: 0.05},
		{Value: 5, Weight: 0.05},
	}
	const n = 100000

	// Act
	counts := make(map[int]int)
	for i := 0; i < n; i++ {
		v := r.WeightedInt(choices)
		require.Contains(t, []int{1, 2, 3, 4, 5}, v)
		counts[v]++
	}

	// Assert
	assert.InDelta(t, 0.6, float64(counts[1])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[2])/n, 0.02)
	assert.InDelta(t, 0.1, float64(counts[3])/n, 0.02)
	assert.InDelta(t, 0.05, float64(counts[4])/n, 0.02)
	assert.InDelta(t, 0.05, float64(counts[5])/n, 0.02)
}

func TestRand_PickString_AllReachable(t *testing.T) {
	r := NewRand(42)
	items := []string{"North", "South", "East", "West"}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[r.PickString(items)] = true
	}

	assert.Len(t, seen, len(items))
}

func TestRand_DateBetween_WithinWindow(t *testing.T) {
	// Arrange
	r := NewRand(42)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	// Act & Assert
	for i := 0; i < 1000; i++ {
		d := r.DateBetween(start, end)
		assert.False(t, d.Before(start))
		assert.True(t, d.Before(end))
		assert.Equal(t, 0, d.Hour())
		assert.Equal(t, time.UTC, d.Location())
	}
}

func TestRand_DateBetween_EmptyWindow(t *testing.T) {
	r := NewRand(42)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start, r.DateBetween(start, start))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.346))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -2.5, Round2(-2.499))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.3, RoundTo(12.34, 1))
	assert.Equal(t, 12.0, RoundTo(12.34, 0))
	assert.Equal(t, 12.346, RoundTo(12.3456, 3))
}
