package production

import (
	"time"

	"showrunner/internal/roster"
)

// Status values recorded in the ledger.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Production is one produce run of one episode. The directory under the
// outputs root is the source of truth for progress; this struct carries the
// resolved show context the pipeline stages need.
type Production struct {
	ID           string
	ShowID       string
	EpisodeIndex int
	Layout       Layout
	Show         roster.Show
	Episode      roster.Episode
	Characters   roster.Characters
}

// Record is the ledger row for a production. It indexes what ran and how it
// ended; artifact files, not this row, decide what a rerun may skip.
type Record struct {
	ID           string
	ShowID       string
	EpisodeIndex int
	Title        string
	Directory    string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
