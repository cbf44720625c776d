// Package seed generates synthetic key/value pairs for populating a tree on
// startup or inside tests.
package seed

import "github.com/go-faker/faker/v4"

// Pair is a single synthetic key/value record.
type Pair struct {
	Key   string
	Value string
}

// Generate returns n synthetic key/value pairs. Keys are not guaranteed
// unique; later pairs may legitimately overwrite earlier ones once loaded,
// mirroring ordinary Put semantics.
func Generate(n int) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{
			Key:   faker.Word() + faker.Word(),
			Value: faker.Word() + faker.Word(),
		}
	}
	return pairs
}
