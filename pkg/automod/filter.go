package automod

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
)

// WordFilter matches messages against a banned word list. Matching is
// per word, not per substring, so embedded fragments inside longer
// clean words do not trigger it.
type WordFilter struct {
	words map[string]struct{}
}

// NewWordFilter builds a filter from an explicit word list
func NewWordFilter(words []string) *WordFilter {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &WordFilter{words: set}
}

// FetchWordFilter downloads a JSON string array of banned words
func FetchWordFilter(url string) (*WordFilter, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lista de palabras devolvió estado %d", resp.StatusCode)
	}

	var words []string
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, err
	}
	return NewWordFilter(words), nil
}

// Size returns the number of words loaded
func (f *WordFilter) Size() int {
	return len(f.words)
}

// Match returns the first banned word found in the content
func (f *WordFilter) Match(content string) (string, bool) {
	if len(f.words) == 0 {
		return "", false
	}

	fields := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	for _, field := range fields {
		if _, banned := f.words[field]; banned {
			return field, true
		}
	}
	return "", false
}
