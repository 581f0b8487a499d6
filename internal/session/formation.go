package session

import (
	"math/rand"

	"github.com/scrimgg/scrim/internal/player"
)

// formTeams shuffles the roster into a uniformly random order, assigns the
// first five participants to side A and the rest to side B, and resolves each
// participant's position against the positions already claimed on their side.
// The shuffled order defines the slot order used by trades and history.
func formTeams(roster []Participant, rng *rand.Rand) (teamA, teamB []PlayerAssignment) {
	shuffled := make([]Participant, len(roster))
	copy(shuffled, roster)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	teamA = make([]PlayerAssignment, 0, TeamSize)
	teamB = make([]PlayerAssignment, 0, TeamSize)
	claimedA := make(map[player.Position]bool, TeamSize)
	claimedB := make(map[player.Position]bool, TeamSize)

	for i, p := range shuffled {
		claimed := claimedA
		if i >= TeamSize {
			claimed = claimedB
		}

		pos := resolvePosition(p, claimed)
		claimed[pos] = true

		assignment := PlayerAssignment{Participant: p, AssignedPosition: pos}
		if i < TeamSize {
			teamA = append(teamA, assignment)
		} else {
			teamB = append(teamB, assignment)
		}
	}

	return teamA, teamB
}

// resolvePosition picks the position a participant actually plays, in order
// of preference: main position, first secondary, second secondary, then the
// first canonical position still unclaimed on the side.
func resolvePosition(p Participant, claimed map[player.Position]bool) player.Position {
	if !claimed[p.MainPosition] {
		return p.MainPosition
	}
	if p.SubPosition1 != "" && !claimed[p.SubPosition1] {
		return p.SubPosition1
	}
	if p.SubPosition2 != "" && !claimed[p.SubPosition2] {
		return p.SubPosition2
	}
	for _, pos := range player.Positions {
		if !claimed[pos] {
			return pos
		}
	}
	// All five canonical positions claimed. Unreachable with five slots per
	// side unless the upstream roster data is inconsistent; fall back to a
	// duplicate of the main position rather than failing the whole formation.
	return p.MainPosition
}
