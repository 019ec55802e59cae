package entity

import "time"

// MatchResult is the record kept once a match has a winner.
type MatchResult struct {
	ID         string    `json:"id"`
	Winner     int       `json:"winner"`
	Guesses    int       `json:"guesses"`
	Hits       int       `json:"hits"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
