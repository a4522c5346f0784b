package dataset

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const categorySeparator = ";"

// CleanRow is one fully cleaned record: the original-language text is gone
// and the combined category string has been expanded into Labels.
type CleanRow struct {
	ID      int64
	Message string
	Genre   string
	Labels  []int
}

// Frame is the cleaned record set handed to the persister. Labels in every
// row align positionally with LabelNames.
type Frame struct {
	LabelNames []string
	Rows       []CleanRow
}

// ValidationReport summarises what Clean did to the merged set.
type ValidationReport struct {
	RowsIn            int
	RowsOut           int
	DuplicatesRemoved int
	MissingDropped    int
	LabelColumns      int
}

func (r *ValidationReport) Summary() string {
	return fmt.Sprintf("rows in=%d out=%d, duplicates removed=%d, missing dropped=%d, label columns=%d",
		r.RowsIn, r.RowsOut, r.DuplicatesRemoved, r.MissingDropped, r.LabelColumns)
}

// labelName strips the trailing "-<digit>" from a category token.
func labelName(token string) (string, error) {
	if len(token) < 3 || token[len(token)-2] != '-' {
		return "", fmt.Errorf("malformed category token %q, expected name-digit", token)
	}
	return token[:len(token)-2], nil
}

// labelValue parses the trailing character of a category token as a binary
// label. Values outside {0,1} are rejected rather than coerced.
func labelValue(token string) (int, error) {
	switch token[len(token)-1] {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	default:
		return 0, fmt.Errorf("category token %q has label value %q, expected 0 or 1",
			token, string(token[len(token)-1]))
	}
}

// Clean expands the combined category column into one binary column per
// label, removes exact duplicates, drops the original-language column and
// drops rows with missing values. The label schema is derived from the
// first row and every other row is validated against it; a mismatch in
// count or ordering is an error, not a silent reinterpretation.
func Clean(merged []MergedRow) (*Frame, *ValidationReport, error) {
	if len(merged) == 0 {
		return nil, nil, fmt.Errorf("no rows to clean, merge produced an empty set")
	}

	report := &ValidationReport{RowsIn: len(merged)}

	firstTokens := strings.Split(merged[0].Categories, categorySeparator)
	names := make([]string, len(firstTokens))
	for i, token := range firstTokens {
		name, err := labelName(token)
		if err != nil {
			return nil, nil, fmt.Errorf("row id=%d: %w", merged[0].ID, err)
		}
		names[i] = name
	}
	report.LabelColumns = len(names)

	rows := make([]CleanRow, 0, len(merged))
	for _, row := range merged {
		tokens := strings.Split(row.Categories, categorySeparator)
		if len(tokens) != len(names) {
			return nil, nil, fmt.Errorf("row id=%d has %d category tokens, schema has %d",
				row.ID, len(tokens), len(names))
		}

		labels := make([]int, len(tokens))
		for i, token := range tokens {
			name, err := labelName(token)
			if err != nil {
				return nil, nil, fmt.Errorf("row id=%d: %w", row.ID, err)
			}
			if name != names[i] {
				return nil, nil, fmt.Errorf("row id=%d: category column %d is %q, schema expects %q",
					row.ID, i, name, names[i])
			}
			value, err := labelValue(token)
			if err != nil {
				return nil, nil, fmt.Errorf("row id=%d: %w", row.ID, err)
			}
			labels[i] = value
		}

		rows = append(rows, CleanRow{
			ID:      row.ID,
			Message: row.Message,
			Genre:   row.Genre,
			Labels:  labels,
		})
	}

	deduped := lo.UniqBy(rows, rowKey)
	report.DuplicatesRemoved = len(rows) - len(deduped)

	kept := make([]CleanRow, 0, len(deduped))
	for _, row := range deduped {
		if strings.TrimSpace(row.Message) == "" || strings.TrimSpace(row.Genre) == "" {
			report.MissingDropped++
			continue
		}
		kept = append(kept, row)
	}

	report.RowsOut = len(kept)
	return &Frame{LabelNames: names, Rows: kept}, report, nil
}

func rowKey(row CleanRow) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\x1f%s\x1f%s", row.ID, row.Message, row.Genre)
	for _, v := range row.Labels {
		fmt.Fprintf(&sb, "\x1f%d", v)
	}
	return sb.String()
}

// EncodeCategories reconstructs the combined category string for a cleaned
// row, in the schema order of the frame. It is the inverse of the expansion
// done by Clean and exists so cleaned data can be fed back through the
// cleaner unchanged.
func (f *Frame) EncodeCategories(row CleanRow) string {
	tokens := make([]string, len(f.LabelNames))
	for i, name := range f.LabelNames {
		tokens[i] = fmt.Sprintf("%s-%d", name, row.Labels[i])
	}
	return strings.Join(tokens, categorySeparator)
}
