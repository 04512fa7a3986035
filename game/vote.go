package game

// VoteOutcome is the result of a resolved round.
type VoteOutcome struct {
	AccusedID      string `json:"accusedId"`
	ImpostorCaught bool   `json:"impostorCaught"`
}

// recordVote stores or overwrites the voter's accusation. Last write wins
// until the round resolves.
func (r *Room) recordVote(voterID, accusedID string) {
	r.round.Votes[voterID] = accusedID
}

// allVotesIn reports whether every current member has a recorded vote.
func (r *Room) allVotesIn() bool {
	return len(r.round.Votes) == len(r.players)
}

// mostAccused returns the member with the strictly greatest number of
// accusations. Ties resolve to the member who joined earliest, which is
// deterministic and visible to clients through the player order.
func (r *Room) mostAccused() string {
	counts := make(map[string]int, len(r.players))
	for _, accused := range r.round.Votes {
		counts[accused]++
	}

	best := ""
	bestCount := -1
	for _, p := range r.players {
		if c := counts[p.ID]; c > bestCount {
			best = p.ID
			bestCount = c
		}
	}
	return best
}

// resolveVotes closes the round. If the group missed the impostor, the
// impostor scores a point; the wrongly accused member is never penalized.
func (r *Room) resolveVotes() VoteOutcome {
	accused := r.mostAccused()
	caught := accused == r.round.ImpostorID
	if !caught {
		if impostor := r.player(r.round.ImpostorID); impostor != nil {
			impostor.Score++
		}
	}
	r.round.Phase = PhaseEnd
	return VoteOutcome{AccusedID: accused, ImpostorCaught: caught}
}
