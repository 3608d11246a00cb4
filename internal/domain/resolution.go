package domain

import "time"

// Resolution is one history entry written after a resolve attempt.
type Resolution struct {
	ID         int
	ShareURL   string
	ContentID  string
	Kind       Kind
	MediaCount int
	ErrorCode  string
	CreatedAt  time.Time
}
