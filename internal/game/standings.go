package game

import "sort"

// Standing is a player's place in the score ranking.
type Standing struct {
	Rank int `json:"rank"`
	Player
}

// Standings orders players by score, highest first. Ties keep seat order and
// share the rank of the first tied player.
func Standings(players []Player) []Standing {
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	out := make([]Standing, len(sorted))
	for i, p := range sorted {
		rank := i + 1
		if i > 0 && p.Score == sorted[i-1].Score {
			rank = out[i-1].Rank
		}
		out[i] = Standing{Rank: rank, Player: p}
	}
	return out
}
