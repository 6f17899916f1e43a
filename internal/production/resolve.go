package production

import (
	"fmt"
	"path/filepath"
	"time"

	"showrunner/internal/roster"
	"showrunner/internal/services"
)

// Resolve loads the show and episode behind a produce request and builds the
// Production with its directory layout. An unknown show or episode index is
// a fatal validation error; no directory is created here.
func Resolve(store *roster.Store, outputsDir, showID string, episodeIndex int, now time.Time) (*Production, error) {
	shows, err := store.Shows()
	if err != nil {
		return nil, err
	}
	show, ok := shows[showID]
	if !ok {
		return nil, services.Wrap(
			services.ErrNotFound, "produce", "resolve show",
			fmt.Sprintf("show %q not found", showID), nil)
	}
	episode, ok := show.Episode(episodeIndex)
	if !ok {
		return nil, services.Wrap(
			services.ErrNotFound, "produce", "resolve episode",
			fmt.Sprintf("show %q has no episode %d", showID, episodeIndex), nil)
	}
	characters, err := store.Characters()
	if err != nil {
		return nil, err
	}

	id := NewID(showID, episodeIndex, now)
	return &Production{
		ID:           id,
		ShowID:       showID,
		EpisodeIndex: episodeIndex,
		Layout:       Layout{Root: filepath.Join(outputsDir, id)},
		Show:         show,
		Episode:      episode,
		Characters:   characters,
	}, nil
}
