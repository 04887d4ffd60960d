package player

import "fmt"

// Rank is the player's standing, derived from reputation
type Rank int

const (
	RankCadet Rank = iota
	RankEnsign
	RankLieutenant
	RankCommander
	RankCaptain
	RankCommodore
	RankAdmiral
	RankFleetAdmiral
)

type rankConfig struct {
	Name          string
	MinReputation int
}

var rankConfigs = []rankConfig{
	RankCadet:        {"Cadet", 0},
	RankEnsign:       {"Ensign", 10},
	RankLieutenant:   {"Lieutenant", 25},
	RankCommander:    {"Commander", 50},
	RankCaptain:      {"Captain", 100},
	RankCommodore:    {"Commodore", 200},
	RankAdmiral:      {"Admiral", 400},
	RankFleetAdmiral: {"Fleet Admiral", 800},
}

// AllRanks returns the eight ranks in ascending order
func AllRanks() []Rank {
	return []Rank{RankCadet, RankEnsign, RankLieutenant, RankCommander, RankCaptain, RankCommodore, RankAdmiral, RankFleetAdmiral}
}

func (r Rank) IsValid() bool {
	return r >= RankCadet && r <= RankFleetAdmiral
}

func (r Rank) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankConfigs[r].Name
}

// MinReputation is the reputation needed to hold the rank
func (r Rank) MinReputation() int {
	return rankConfigs[r].MinReputation
}

// RankForReputation returns the highest rank whose threshold the reputation meets
func RankForReputation(reputation int) Rank {
	rank := RankCadet
	for _, r := range AllRanks() {
		if reputation >= r.MinReputation() {
			rank = r
		}
	}
	return rank
}

// ParseRank accepts a rank name such as "Captain"
func ParseRank(s string) (Rank, error) {
	for _, r := range AllRanks() {
		if r.String() == s {
			return r, nil
		}
	}
	return RankCadet, fmt.Errorf("unknown rank: %s", s)
}
