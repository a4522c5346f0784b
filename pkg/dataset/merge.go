package dataset

// MergedRow is a message joined with its combined category string. The
// Original field survives only until Clean drops it.
type MergedRow struct {
	ID         int64
	Message    string
	Original   string
	Genre      string
	Categories string
}

// Merge inner-joins messages and categories on the id key. Rows whose id
// appears in only one input are excluded. Input order of the messages file
// is preserved; when an id repeats on either side, every pairing is kept
// (exact duplicates are removed later by Clean).
func Merge(messages []Message, categories []CategoryRecord) []MergedRow {
	byID := make(map[int64][]CategoryRecord, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = append(byID[cat.ID], cat)
	}

	merged := make([]MergedRow, 0, len(messages))
	for _, msg := range messages {
		for _, cat := range byID[msg.ID] {
			merged = append(merged, MergedRow{
				ID:         msg.ID,
				Message:    msg.Message,
				Original:   msg.Original,
				Genre:      msg.Genre,
				Categories: cat.Categories,
			})
		}
	}
	return merged
}
