package models

import "time"

// GateAttempt summarises a user's secure-action attempts inside the rolling
// window: Count admitted attempts, the oldest made at WindowStart. Count
// never exceeds the configured limit.
type GateAttempt struct {
	UserID      int64
	WindowStart time.Time
	Count       int
}

// VerifyResult is the outcome of a secure-action gate check. It is always
// delivered as a successful response; Valid carries the verdict.
type VerifyResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
