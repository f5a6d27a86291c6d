// Package seed loads the demo leaderboard and live game rows shown on a fresh hub.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Entry is a seeded leaderboard row
type Entry struct {
	Username string
	Score    int
	Mode     model.GameMode
	Date     string // YYYY-MM-DD
}

// LeaderboardEntries returns the demo leaderboard, highest score first
func LeaderboardEntries() []Entry {
	return []Entry{
		{"PixelViper", 8950, model.GameModeWalls, "2026-02-19"},
		{"ShadowMaster", 8420, model.GameModeWalls, "2026-02-18"},
		{"NeonByte", 7850, model.GameModePassThrough, "2026-02-19"},
		{"CyberSnake", 7620, model.GameModeWalls, "2026-02-19"},
		{"RetroGlitch", 7340, model.GameModePassThrough, "2026-02-18"},
		{"ArcadeKing", 6890, model.GameModeWalls, "2026-02-17"},
		{"GlowWorm", 6750, model.GameModePassThrough, "2026-02-19"},
		{"BitCrusher", 6520, model.GameModeWalls, "2026-02-18"},
		{"VoidRunner", 6180, model.GameModePassThrough, "2026-02-17"},
		{"PhosphorGlow", 5940, model.GameModeWalls, "2026-02-19"},
		{"EchoKnight", 5670, model.GameModePassThrough, "2026-02-16"},
		{"IceVenom", 5420, model.GameModeWalls, "2026-02-18"},
		{"NovaStrike", 5180, model.GameModePassThrough, "2026-02-19"},
		{"HexEngineer", 4950, model.GameModeWalls, "2026-02-17"},
		{"FrostByte", 4720, model.GameModePassThrough, "2026-02-18"},
		{"ThunderSnake", 4580, model.GameModeWalls, "2026-02-19"},
		{"CrimsonWave", 4320, model.GameModePassThrough, "2026-02-16"},
		{"SilentViper", 4150, model.GameModeWalls, "2026-02-15"},
		{"LunarEcho", 3920, model.GameModePassThrough, "2026-02-19"},
		{"InfernoPath", 3750, model.GameModeWalls, "2026-02-18"},
	}
}

// LiveGames returns the demo live games
func LiveGames() []model.LiveGame {
	at := func(hour, minute int) time.Time {
		return time.Date(2026, 2, 19, hour, minute, 0, 0, time.UTC)
	}
	return []model.LiveGame{
		{ID: "game_001", Username: "PixelViper", Score: 890, Mode: model.GameModeWalls, StartedAt: at(10, 15)},
		{ID: "game_002", Username: "ShadowMaster", Score: 650, Mode: model.GameModePassThrough, StartedAt: at(10, 22)},
		{ID: "game_003", Username: "NeonByte", Score: 1240, Mode: model.GameModeWalls, StartedAt: at(10, 5)},
		{ID: "game_004", Username: "CyberSnake", Score: 520, Mode: model.GameModePassThrough, StartedAt: at(10, 28)},
		{ID: "game_005", Username: "RetroGlitch", Score: 780, Mode: model.GameModeWalls, StartedAt: at(10, 18)},
		{ID: "game_006", Username: "ArcadeKing", Score: 310, Mode: model.GameModePassThrough, StartedAt: at(10, 32)},
		{ID: "game_007", Username: "GlowWorm", Score: 1050, Mode: model.GameModeWalls, StartedAt: at(10, 10)},
		{ID: "game_008", Username: "BitCrusher", Score: 420, Mode: model.GameModePassThrough, StartedAt: at(10, 25)},
	}
}

// Result reports how many rows Load inserted
type Result struct {
	LeaderboardEntries int
	LiveGames          int
}

// Load inserts the demo rows into any collection that is still empty
// Collections that already hold data are left untouched, so Load is safe on every start
func Load(ctx context.Context, store storage.Storage) (Result, error) {
	var result Result

	existing, err := store.ListLeaderboard(ctx, "")
	if err != nil {
		return result, fmt.Errorf("list leaderboard: %w", err)
	}
	if len(existing) == 0 {
		for _, e := range LeaderboardEntries() {
			date, err := time.Parse(model.DateLayout, e.Date)
			if err != nil {
				return result, fmt.Errorf("parse seed date %q: %w", e.Date, err)
			}
			if _, err := store.AddLeaderboardEntry(ctx, e.Username, e.Score, e.Mode, date); err != nil {
				return result, fmt.Errorf("add leaderboard entry: %w", err)
			}
			result.LeaderboardEntries++
		}
	}

	games, err := store.ListLiveGames(ctx)
	if err != nil {
		return result, fmt.Errorf("list live games: %w", err)
	}
	if len(games) == 0 {
		for _, g := range LiveGames() {
			if _, err := store.AddLiveGame(ctx, &g); err != nil {
				return result, fmt.Errorf("add live game %s: %w", g.ID, err)
			}
			result.LiveGames++
		}
	}

	return result, nil
}
