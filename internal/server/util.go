package server

import "crypto/rand"

// newInvitationCode draws a 6 character room code from A-Z0-9. Collisions
// are accepted as rare; the unique index rejects them instead of silently
// joining players to the wrong room.
func newInvitationCode() string {
	buf := make([]byte, invitationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = invitationCodeAlphabet[int(buf[i])%len(invitationCodeAlphabet)]
	}
	return string(buf)
}

// newRoundLetter picks the round letter. Rerolls may repeat the previous
// letter; distinct selection is not promised.
func newRoundLetter() string {
	buf := make([]byte, 1)
	if _, err := rand.Read(buf); err != nil {
		return "A"
	}
	return string(roundLetterAlphabet[int(buf[0])%len(roundLetterAlphabet)])
}
