package server

// resolveView maps current room and round state to the canonical client
// path. It is pure and total: every state combination yields either a path
// to navigate to or ok=false, meaning the caller must stay put. Missing
// identifiers never produce a malformed path; they produce ok=false so a
// client that has not finished loading does not navigate in circles.
func resolveView(roomState, roundState string, isOrganizer bool, roomID, roundID, playerID string) (string, bool) {
	switch roomState {
	case roomStateLobby:
		return withPlayer("/lobby/"+roomID, playerID), true
	case roomStatePlaying:
		switch roundState {
		case roundStateWriting:
			return withPlayer("/play/"+roomID, playerID), true
		case roundStateScoring:
			if isOrganizer {
				if roundID == "" {
					return "", false
				}
				return "/score/" + roomID + "/" + roundID, true
			}
			if roundID == "" || playerID == "" {
				return "", false
			}
			return withPlayer("/results/"+roomID+"/"+roundID, playerID), true
		default:
			return "", false
		}
	case roomStateResults:
		if roundID == "" || playerID == "" {
			return "", false
		}
		return withPlayer("/results/"+roomID+"/"+roundID, playerID), true
	case roomStateFinished:
		return withPlayer("/ranking/"+roomID, playerID), true
	default:
		return "", false
	}
}

func withPlayer(path, playerID string) string {
	if playerID == "" {
		return path
	}
	return path + "?playerId=" + playerID
}
