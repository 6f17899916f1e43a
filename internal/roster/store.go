package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	charactersFile = "characters.json"
	showsFile      = "shows.json"
)

// Store reads and writes roster JSON files under the data directory.
type Store struct {
	dataDir string
}

// NewStore constructs a roster store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Characters loads the character roster. A missing file is an empty roster.
func (s *Store) Characters() (Characters, error) {
	chars := Characters{}
	if err := s.loadJSON(charactersFile, &chars); err != nil {
		return nil, err
	}
	return chars, nil
}

// SaveCharacters persists the character roster.
func (s *Store) SaveCharacters(chars Characters) error {
	return s.saveJSON(charactersFile, chars)
}

// Shows loads the show roster. A missing file is an empty roster.
func (s *Store) Shows() (Shows, error) {
	shows := Shows{}
	if err := s.loadJSON(showsFile, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// SaveShows persists the show roster.
func (s *Store) SaveShows(shows Shows) error {
	return s.saveJSON(showsFile, shows)
}

// Show loads one show by identifier.
func (s *Store) Show(id string) (Show, error) {
	shows, err := s.Shows()
	if err != nil {
		return Show{}, err
	}
	show, ok := shows[id]
	if !ok {
		return Show{}, fmt.Errorf("show not found: %s", id)
	}
	return show, nil
}

// AddCharacter inserts a character under the given identifier. Identifiers
// are lowercased; an existing identifier is an error.
func (s *Store) AddCharacter(id string, char Character) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return errors.New("character id required")
	}
	if !char.VoiceProvider.Known() {
		return fmt.Errorf("unknown voice provider %q", char.VoiceProvider)
	}
	chars, err := s.Characters()
	if err != nil {
		return err
	}
	if _, exists := chars[id]; exists {
		return fmt.Errorf("character id already exists: %s", id)
	}
	if strings.TrimSpace(char.Name) == "" {
		char.Name = id
	}
	chars[id] = char
	return s.SaveCharacters(chars)
}

// UpdateCharacter replaces an existing character record.
func (s *Store) UpdateCharacter(id string, char Character) error {
	chars, err := s.Characters()
	if err != nil {
		return err
	}
	if _, exists := chars[id]; !exists {
		return fmt.Errorf("character not found: %s", id)
	}
	if !char.VoiceProvider.Known() {
		return fmt.Errorf("unknown voice provider %q", char.VoiceProvider)
	}
	chars[id] = char
	return s.SaveCharacters(chars)
}

// RemoveCharacter deletes a character from the roster.
func (s *Store) RemoveCharacter(id string) error {
	chars, err := s.Characters()
	if err != nil {
		return err
	}
	if _, exists := chars[id]; !exists {
		return fmt.Errorf("character not found: %s", id)
	}
	delete(chars, id)
	return s.SaveCharacters(chars)
}

// CreateShow inserts a new show and returns its generated identifier.
func (s *Store) CreateShow(show Show) (string, error) {
	if strings.TrimSpace(show.Title) == "" {
		return "", errors.New("show title required")
	}
	shows, err := s.Shows()
	if err != nil {
		return "", err
	}
	id := newShowID()
	for {
		if _, exists := shows[id]; !exists {
			break
		}
		id = newShowID()
	}
	shows[id] = show
	if err := s.SaveShows(shows); err != nil {
		return "", err
	}
	return id, nil
}

// AddEpisode appends an episode to a show.
func (s *Store) AddEpisode(showID string, ep Episode) error {
	if strings.TrimSpace(ep.Title) == "" {
		return errors.New("episode title required")
	}
	shows, err := s.Shows()
	if err != nil {
		return err
	}
	show, ok := shows[showID]
	if !ok {
		return fmt.Errorf("show not found: %s", showID)
	}
	if ep.Status == "" {
		ep.Status = EpisodeStatusDraft
	}
	show.Episodes = append(show.Episodes, ep)
	shows[showID] = show
	return s.SaveShows(shows)
}

// RemoveShow deletes a show from the roster.
func (s *Store) RemoveShow(id string) error {
	shows, err := s.Shows()
	if err != nil {
		return err
	}
	if _, exists := shows[id]; !exists {
		return fmt.Errorf("show not found: %s", id)
	}
	delete(shows, id)
	return s.SaveShows(shows)
}

// newShowID mirrors the historical id scheme: the first 8 hex characters of
// a random UUID.
func newShowID() string {
	return uuid.NewString()[:8]
}

func (s *Store) loadJSON(name string, target any) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveJSON(name string, value any) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
