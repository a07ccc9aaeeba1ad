package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for cards := MinCardsQty; cards <= MaxCardsQty; cards += 2 {
		pictures, err := GenerateBoard(cards/2, rng)
		if err != nil {
			t.Fatalf("GenerateBoard(%d) failed: %v", cards/2, err)
		}
		if len(pictures) != cards {
			t.Fatalf("Expected %d cards, got %d", cards, len(pictures))
		}

		counts := make(map[int]int)
		for _, p := range pictures {
			if p < 1 || p > AvailablePictures {
				t.Fatalf("Picture %d out of range", p)
			}
			counts[p]++
		}
		if len(counts) != cards/2 {
			t.Errorf("Expected %d distinct pictures, got %d", cards/2, len(counts))
		}
		for p, n := range counts {
			if n != 2 {
				t.Errorf("Picture %d appears %d times on a %d card board", p, n, cards)
			}
		}
	}
}

func TestGenerateBoard_SmallestBoard(t *testing.T) {
	pictures, err := GenerateBoard(2, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pictures) != 4 {
		t.Fatalf("Expected 4 cards, got %d", len(pictures))
	}
}

func TestGenerateBoard_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := GenerateBoard(AvailablePictures+1, rng); !errors.Is(err, ErrTooManyPairs) {
		t.Errorf("Expected ErrTooManyPairs, got: %v", err)
	}
	if _, err := GenerateBoard(0, rng); !errors.Is(err, ErrInvalidPairCount) {
		t.Errorf("Expected ErrInvalidPairCount, got: %v", err)
	}
}

func TestGenerateBoard_Reshuffles(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	first, _ := GenerateBoard(12, rng)
	second, _ := GenerateBoard(12, rng)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected consecutive boards to differ")
	}
}
