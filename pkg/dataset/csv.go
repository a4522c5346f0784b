package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Message is one row of the raw messages file.
type Message struct {
	ID       int64
	Message  string
	Original string
	Genre    string
}

// CategoryRecord is one row of the raw categories file: an identifier plus
// the combined "label-0;label-1;..." string.
type CategoryRecord struct {
	ID         int64
	Categories string
}

// header maps lower-cased column names to their positions.
type header map[string]int

func readCSV(path string) (header, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	h := make(header, len(records[0]))
	for i, name := range records[0] {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, records[1:], nil
}

func (h header) require(path string, columns ...string) error {
	for _, col := range columns {
		if _, ok := h[col]; !ok {
			return fmt.Errorf("%s has no %q column", path, col)
		}
	}
	return nil
}

func parseID(raw string, path string, line int) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid id %q: %w", path, line, raw, err)
	}
	return id, nil
}

// LoadMessages reads the messages file. The id and message columns are
// mandatory; original and genre are read when present.
func LoadMessages(path string) ([]Message, error) {
	h, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "id", "message"); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(rows))
	for i, row := range rows {
		id, err := parseID(row[h["id"]], path, i+2)
		if err != nil {
			return nil, err
		}
		msg := Message{ID: id, Message: row[h["message"]]}
		if idx, ok := h["original"]; ok {
			msg.Original = row[idx]
		}
		if idx, ok := h["genre"]; ok {
			msg.Genre = row[idx]
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// LoadCategories reads the categories file. Both the id and categories
// columns are mandatory.
func LoadCategories(path string) ([]CategoryRecord, error) {
	h, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "id", "categories"); err != nil {
		return nil, err
	}

	records := make([]CategoryRecord, 0, len(rows))
	for i, row := range rows {
		id, err := parseID(row[h["id"]], path, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, CategoryRecord{ID: id, Categories: row[h["categories"]]})
	}
	return records, nil
}
