package server

const (
	roomStateLobby    = "lobby"
	roomStatePlaying  = "playing"
	roomStateResults  = "results"
	roomStateFinished = "finished"
)

const (
	roundStateWriting   = "writing"
	roundStateScoring   = "scoring"
	roundStateCompleted = "completed"
)

const (
	invitationCodeLength   = 6
	invitationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Round letters exclude K, W, and Ñ.
	roundLetterAlphabet = "ABCDEFGHIJLMNOPQRSTUVXYZ"
)

const (
	minNameLength      = 2
	maxNameLength      = 20
	maxAnswerLength    = 30
	maxCategoryLength  = 30
	categoriesPerRound = 5
)
