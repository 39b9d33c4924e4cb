package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func NewScoreboard() entity.Scoreboard {
	return entity.Scoreboard{
		{Symbol: entity.SymbolA},
		{Symbol: entity.SymbolB},
	}
}

// RecordWin - credits one win to symbol, the other counter is left as is.
func RecordWin(scores entity.Scoreboard, symbol entity.Symbol) entity.Scoreboard {
	for i := range scores {
		if scores[i].Symbol == symbol {
			scores[i].Wins++
		}
	}

	return scores
}

func FormatScore(scores entity.Scoreboard) string {
	return fmt.Sprintf("Score: %s - %d | %s - %d",
		entity.SymbolA, scores.Of(entity.SymbolA).Wins,
		entity.SymbolB, scores.Of(entity.SymbolB).Wins,
	)
}
