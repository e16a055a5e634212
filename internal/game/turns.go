package game

// NextActor derives the player expected to act from the state alone, for
// callers that poll persisted state rather than holding the last Result. Nil
// means no one acts (the dealing phase waits on StartNewRound; game over
// waits on nothing).
func NextActor(s *GameState) *Player {
	if s.PendingPeggingScore != nil {
		return playerPtr(s.PendingPeggingScore.Player)
	}

	switch s.Phase {
	case PhaseCuttingForDealer:
		if s.CutForDealer.Dealer == nil {
			for _, p := range []Player{PlayerOne, PlayerTwo} {
				if s.CutForDealer.Draws[p] == nil {
					return playerPtr(p)
				}
			}
			return nil
		}
		for _, p := range []Player{PlayerOne, PlayerTwo} {
			if !s.CutForDealer.Acknowledged[p] {
				return playerPtr(p)
			}
		}
		return clonePlayerPtr(s.Dealer)

	case PhaseDiscarding:
		for _, p := range []Player{PlayerOne, PlayerTwo} {
			if len(s.Players[p].Discards) == 0 {
				return playerPtr(p)
			}
		}
		return nil

	case PhaseCut:
		return playerPtr(s.NonDealer())

	case PhasePlaying:
		return playerPtr(nextPegger(s))

	case PhaseCounting:
		if s.Counting.Claim != nil {
			return playerPtr(s.Counting.Claim.Player.Other())
		}
		counter, _, _, err := countingTurn(s)
		if err != nil {
			return nil
		}
		return playerPtr(counter)

	default:
		return nil
	}
}
