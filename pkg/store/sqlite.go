// Package store persists the cleaned message frame to a SQLite file and
// reads it back for training. The table is the only thing the two pipeline
// stages share.
package store

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lab/disaster-pipeline/pkg/dataset"
)

// TableName is the single table both pipeline stages know about.
const TableName = "messages"

// fixedColumns precede the dynamically named label columns.
var fixedColumns = []string{"id", "message", "genre"}

var columnNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	return db, nil
}

// Save creates the messages table at path and writes every row of the frame
// in a single transaction. If the table already exists the save fails with
// the underlying duplicate-table error; it never appends to or replaces
// prior data.
func Save(path string, frame *dataset.Frame) error {
	for _, name := range frame.LabelNames {
		if !columnNamePattern.MatchString(name) {
			return fmt.Errorf("label %q is not usable as a column name", name)
		}
	}

	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	columns := make([]string, 0, len(fixedColumns)+len(frame.LabelNames))
	columns = append(columns,
		`"id" INTEGER NOT NULL`,
		`"message" TEXT NOT NULL`,
		`"genre" TEXT NOT NULL`,
	)
	for _, name := range frame.LabelNames {
		columns = append(columns, fmt.Sprintf("%q INTEGER NOT NULL", name))
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createStmt := fmt.Sprintf("CREATE TABLE %q (%s)", TableName, strings.Join(columns, ", "))
	if _, err := tx.Exec(createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", TableName, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(fixedColumns)+len(frame.LabelNames)), ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %q VALUES (%s)", TableName, placeholders)
	stmt, err := tx.Preparex(insertStmt)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range frame.Rows {
		args := make([]interface{}, 0, len(fixedColumns)+len(row.Labels))
		args = append(args, row.ID, row.Message, row.Genre)
		for _, v := range row.Labels {
			args = append(args, v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row id=%d: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// TrainingData is the table read back into memory: message texts as the
// feature series, the binary label matrix aligned row-for-row, and the
// label column names for reporting.
type TrainingData struct {
	Texts      []string
	Labels     [][]int
	LabelNames []string
}

// Load reads the messages table from path. It fails clearly when the file,
// the table or the expected fixed columns are absent.
func Load(path string) (*TrainingData, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("store %s is not readable: %w", path, err)
	}

	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Queryx(fmt.Sprintf("SELECT * FROM %q ORDER BY rowid", TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", TableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", TableName, err)
	}
	if len(columns) <= len(fixedColumns) {
		return nil, fmt.Errorf("table %s has %d columns, expected %v plus label columns",
			TableName, len(columns), fixedColumns)
	}
	for i, want := range fixedColumns {
		if columns[i] != want {
			return nil, fmt.Errorf("table %s column %d is %q, expected %q", TableName, i, columns[i], want)
		}
	}

	data := &TrainingData{LabelNames: columns[len(fixedColumns):]}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		text, ok := values[1].(string)
		if !ok {
			return nil, fmt.Errorf("message column holds %T, expected text", values[1])
		}

		labels := make([]int, len(data.LabelNames))
		for i, raw := range values[len(fixedColumns):] {
			v, ok := raw.(int64)
			if !ok {
				return nil, fmt.Errorf("label column %s holds %T, expected integer",
					data.LabelNames[i], raw)
			}
			labels[i] = int(v)
		}

		data.Texts = append(data.Texts, text)
		data.Labels = append(data.Labels, labels)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading table %s: %w", TableName, err)
	}
	if len(data.Texts) == 0 {
		return nil, fmt.Errorf("table %s is empty", TableName)
	}
	return data, nil
}
