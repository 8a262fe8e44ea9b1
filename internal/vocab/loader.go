package vocab

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Header column names. The original spreadsheet used english/japanese, so
// those are accepted as aliases for front/back.
var (
	frontColumns = []string{"front", "english"}
	backColumns  = []string{"back", "japanese"}
)

const fetchTimeout = 30 * time.Second

// Load reads a word list from source, which is either a local file path or
// an http(s) URL (e.g. a published spreadsheet CSV).
func Load(ctx context.Context, source string) ([]Word, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return LoadURL(ctx, source)
	}
	return LoadFile(source)
}

// LoadFile reads a word list from a CSV file on disk.
func LoadFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// LoadURL fetches a word list CSV over HTTP.
func LoadURL(ctx context.Context, url string) ([]Word, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build word list request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch word list: HTTP %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse decodes CSV rows into words. The first row must be a header naming
// an id column plus front/back columns (english/japanese accepted). Rows
// missing any required field are skipped with a warning, never fatal.
func Parse(r io.Reader) ([]Word, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read word list header: %w", err)
	}

	idCol, frontCol, backCol, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var words []Word
	seen := make(map[string]bool)
	line := 1
	for {
		line++
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("skipping malformed word row", "line", line, "err", err)
			continue
		}

		w, ok := rowToWord(rec, idCol, frontCol, backCol)
		if !ok {
			slog.Warn("skipping word row with missing fields", "line", line)
			continue
		}
		if seen[w.ID] {
			slog.Warn("skipping duplicate word id", "line", line, "id", w.ID)
			continue
		}
		seen[w.ID] = true
		words = append(words, w)
	}
	return words, nil
}

func rowToWord(rec []string, idCol, frontCol, backCol int) (Word, bool) {
	max := idCol
	if frontCol > max {
		max = frontCol
	}
	if backCol > max {
		max = backCol
	}
	if len(rec) <= max {
		return Word{}, false
	}

	w := Word{
		ID:    strings.TrimSpace(rec[idCol]),
		Front: strings.TrimSpace(rec[frontCol]),
		Back:  strings.TrimSpace(rec[backCol]),
	}
	if w.ID == "" || w.Front == "" || w.Back == "" {
		return Word{}, false
	}
	return w, true
}

func resolveColumns(header []string) (idCol, frontCol, backCol int, err error) {
	idCol, frontCol, backCol = -1, -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case name == "id":
			idCol = i
		case contains(frontColumns, name):
			frontCol = i
		case contains(backColumns, name):
			backCol = i
		}
	}
	if idCol < 0 || frontCol < 0 || backCol < 0 {
		return 0, 0, 0, fmt.Errorf("word list header must name id, front and back columns, got %v", header)
	}
	return idCol, frontCol, backCol, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
