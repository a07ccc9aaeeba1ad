// Package strategy contains automated players for the memory game.
//
// Memory remembers every picture it has seen; Random picks blindly. Both
// work from the CardView slice any client can observe, so the same player
// drives the REST bot (cmd/autoplay) and the in-process simulator used by
// cmd/analyze.
package strategy
