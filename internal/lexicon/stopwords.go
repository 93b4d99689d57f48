package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed stopwords.json
var stopwordFiles embed.FS

const stopwordFile = "stopwords.json"

// listDomain holds generic verbs that carry no topical signal in persona or task text.
const listDomain = "domain"

// listBasic is the minimal set used when a language list cannot be loaded.
const listBasic = "basic"

// cache stores the parsed stop-word lists to avoid repeated JSON parsing
var (
	cache   map[string][]string
	cacheMu sync.RWMutex
)

// StopWords is a set of words excluded from keyword extraction.
type StopWords map[string]struct{}

// Contains reports whether word is in the set.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadStopWords returns the stop-word set for language merged with the domain list.
// Returns an error if no list exists for language.
func LoadStopWords(language string) (StopWords, error) {
	lists, err := loadLists()
	if err != nil {
		return nil, err
	}

	words, exists := lists[language]
	if !exists || language == listDomain || language == listBasic {
		return nil, fmt.Errorf("no stop-word list for language %q", language)
	}

	set := make(StopWords, len(words)+len(lists[listDomain]))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, w := range lists[listDomain] {
		set[w] = struct{}{}
	}
	return set, nil
}

// BasicStopWords returns the minimal built-in set merged with the domain list.
func BasicStopWords() StopWords {
	set := make(StopWords)
	lists, err := loadLists()
	if err != nil {
		return set
	}
	for _, w := range lists[listBasic] {
		set[w] = struct{}{}
	}
	for _, w := range lists[listDomain] {
		set[w] = struct{}{}
	}
	return set
}

// loadLists loads and caches the embedded stop-word file.
func loadLists() (map[string][]string, error) {
	cacheMu.RLock()
	if cache != nil {
		lists := cache
		cacheMu.RUnlock()
		return lists, nil
	}
	cacheMu.RUnlock()

	data, err := stopwordFiles.ReadFile(stopwordFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop-word file: %w", err)
	}

	var lists map[string][]string
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse stop-word file: %w", err)
	}

	cacheMu.Lock()
	cache = lists
	cacheMu.Unlock()

	return lists, nil
}
