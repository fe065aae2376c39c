package domain

// AttemptStatus tags a submitted expression for the board.
type AttemptStatus string

const (
	StatusCorrect   AttemptStatus = "correct"
	StatusIncorrect AttemptStatus = "incorrect"
	StatusError     AttemptStatus = "error"
	StatusPending   AttemptStatus = "pending"
	StatusEmpty     AttemptStatus = "empty" // unused board row
)

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	RoundPlaying RoundStatus = "playing"
	RoundWon     RoundStatus = "won"
	RoundLost    RoundStatus = "lost"
)

// Finished reports whether no further attempts are accepted.
func (s RoundStatus) Finished() bool {
	return s == RoundWon || s == RoundLost
}
