package engine

import (
	"fmt"
	"math/rand"
)

// GenerateBoard draws pairCount distinct pictures from 1..AvailablePictures,
// duplicates them and returns a random permutation of the 2*pairCount values.
func GenerateBoard(pairCount int, rng *rand.Rand) ([]int, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPairCount, pairCount)
	}
	if pairCount > AvailablePictures {
		return nil, fmt.Errorf("%w: %d pairs requested, %d pictures available", ErrTooManyPairs, pairCount, AvailablePictures)
	}

	drawn := rng.Perm(AvailablePictures)[:pairCount]

	pictures := make([]int, 0, pairCount*2)
	for _, p := range drawn {
		pictures = append(pictures, p+1)
	}
	pictures = append(pictures, pictures...)

	rng.Shuffle(len(pictures), func(i, j int) {
		pictures[i], pictures[j] = pictures[j], pictures[i]
	})

	return pictures, nil
}
