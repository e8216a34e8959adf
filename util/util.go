// Package util provides small helpers shared by examples and tests.
package util

import (
	"math/rand"

	"github.com/hupe1980/mochow/model"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// RandomVector generates one random query vector with values in [0, 1).
func (r *RNG) RandomVector(dimension int) model.FloatVector {
	vec := make(model.FloatVector, dimension)
	for i := range vec {
		vec[i] = r.rand.Float32()
	}
	return vec
}

// RandomVectors generates random embedding vectors using the given RNG.
func (r *RNG) RandomVectors(num int, dimension int) []model.FloatVector {
	vectors := make([]model.FloatVector, num)
	for i := range vectors {
		vectors[i] = r.RandomVector(dimension)
	}
	return vectors
}
