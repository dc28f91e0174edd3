package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type weighted struct {
	weight float64
	value  float64
}

func avg(items []weighted) float64 {
	return WeightedAverage(items,
		func(w weighted) float64 { return w.weight },
		func(w weighted) float64 { return w.value })
}

func TestWeightedAverage_Basic(t *testing.T) {
	got := avg([]weighted{{30, 50}, {70, 100}})
	assert.Equal(t, 85.0, got)
}

func TestWeightedAverage_WeightsNeedNotSumTo100(t *testing.T) {
	got := avg([]weighted{{1, 40}, {3, 80}})
	assert.Equal(t, 70.0, got)
}

func TestWeightedAverage_ZeroTotalWeightFallsBackToMean(t *testing.T) {
	got := avg([]weighted{{0, 20}, {0, 80}})
	assert.Equal(t, 50.0, got)
}

func TestWeightedAverage_Empty(t *testing.T) {
	assert.Equal(t, 0.0, avg(nil))
}

func TestWeightedAverage_ClampsAndRounds(t *testing.T) {
	assert.Equal(t, 100.0, avg([]weighted{{1, 150}}))
	assert.Equal(t, 0.0, avg([]weighted{{1, -10}}))
	assert.Equal(t, 33.33, avg([]weighted{{1, 0}, {1, 0}, {1, 100}}))
}

func TestClamp100(t *testing.T) {
	assert.Equal(t, 0.0, Clamp100(-5))
	assert.Equal(t, 42.5, Clamp100(42.5))
	assert.Equal(t, 100.0, Clamp100(101))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(66.666666))
	assert.Equal(t, 66.66, Round2(66.664))
}

func TestCents(t *testing.T) {
	assert.Equal(t, Cents(1234), CentsFromFloat(12.34))
	assert.Equal(t, Cents(1000), CentsFromFloat(9.999))
	assert.Equal(t, "12.34", Cents(1234).String())
	assert.Equal(t, 12.34, Cents(1234).Float())
}
