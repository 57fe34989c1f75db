package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nvaleckas/stepwise/internal/util"
)

// Checklist returns the completion marks for stepID, one per practice. A
// stored row whose mark count differs from practiceCount is stale (the
// program data changed shape underneath it) and is discarded wholesale;
// callers always receive exactly practiceCount entries.
func (d *Database) Checklist(ctx context.Context, stepID, practiceCount int) ([]bool, error) {
	fresh := make([]bool, practiceCount)
	var raw string
	err := d.DB.QueryRowContext(ctx, "SELECT marks FROM checklists WHERE step_id = ?", stepID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fresh, nil
	}
	if err != nil {
		return nil, wrapChecklistErr("load", int64(stepID), err)
	}
	marks, ok := parseMarks(raw)
	if !ok || len(marks) != practiceCount {
		log.Printf("discarding stale checklist for step %d (%d marks, want %d)", stepID, len(marks), practiceCount)
		if _, err := d.DB.ExecContext(ctx, "DELETE FROM checklists WHERE step_id = ?", stepID); err != nil {
			return nil, wrapChecklistErr("discard", int64(stepID), err)
		}
		return fresh, nil
	}
	return marks, nil
}

// SetChecklistItem sets one practice mark, preserving the others.
func (d *Database) SetChecklistItem(ctx context.Context, stepID, practiceCount, idx int, done bool) error {
	if idx < 0 || idx >= practiceCount {
		return wrapChecklistErr("set item", int64(stepID), fmt.Errorf("practice index %d out of range [0,%d)", idx, practiceCount))
	}
	marks, err := d.Checklist(ctx, stepID, practiceCount)
	if err != nil {
		return err
	}
	marks[idx] = done
	_, err = d.DB.ExecContext(ctx, `
		INSERT INTO checklists (step_id, marks, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(step_id) DO UPDATE SET marks = excluded.marks, updated_at = CURRENT_TIMESTAMP`,
		stepID, encodeMarks(marks))
	return wrapChecklistErr("set item", int64(stepID), err)
}

// AllChecklists returns every stored checklist as-is, keyed by step id.
// Shape validation against the catalog is the caller's concern; rows that do
// not parse at all are skipped.
func (d *Database) AllChecklists(ctx context.Context) (map[int][]bool, error) {
	rows, err := d.DB.QueryContext(ctx, "SELECT step_id, marks FROM checklists ORDER BY step_id ASC")
	if err != nil {
		return nil, wrapChecklistErr("list", 0, err)
	}
	defer rows.Close()

	out := make(map[int][]bool)
	for rows.Next() {
		var stepID int
		var raw string
		if err := rows.Scan(&stepID, &raw); err != nil {
			return nil, wrapChecklistErr("list", 0, err)
		}
		if marks, ok := parseMarks(raw); ok {
			out[stepID] = marks
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapChecklistErr("list", 0, err)
	}
	return out, nil
}

func (d *Database) ResetAllChecklists(ctx context.Context) error {
	_, err := d.DB.ExecContext(ctx, "DELETE FROM checklists")
	return wrapChecklistErr("reset", 0, err)
}

func parseMarks(raw string) ([]bool, bool) {
	if raw == "" {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	marks := make([]bool, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "0":
			marks = append(marks, false)
		case "1":
			marks = append(marks, true)
		default:
			return nil, false
		}
	}
	return marks, true
}

func encodeMarks(marks []bool) string {
	parts := make([]string, len(marks))
	for i, m := range marks {
		parts[i] = fmt.Sprintf("%d", util.BoolToInt(m))
	}
	return strings.Join(parts, ",")
}
