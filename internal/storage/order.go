package storage

import (
	"slices"
	"strings"

	"github.com/mcoot/snakyhub/internal/model"
)

// SortLiveGames orders games by start time, oldest first, breaking ties by id
// Backends without a natural order use this so listings are deterministic
func SortLiveGames(games []*model.LiveGame) {
	slices.SortFunc(games, func(a, b *model.LiveGame) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
}
