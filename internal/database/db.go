package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the SQLite-backed settings store. All persisted app state
// (practice checklists, the active timer descriptor, daily advancement
// bookkeeping, reminder preferences) lives behind it.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens or creates the store at dbFile and applies the schema.
func Open(ctx context.Context, dbFile string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbFile, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", dbFile, err)
	}
	d := &Database{DB: db, dbFile: dbFile}
	if err := d.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS checklists (
			step_id INTEGER PRIMARY KEY,
			marks TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table: %q: %w", query, err)
		}
	}
	d.migrate(ctx)
	return nil
}

// migrate patches older databases in place. Statements are best-effort; a
// column that already exists makes ALTER TABLE fail, which is fine.
func (d *Database) migrate(ctx context.Context) {
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE checklists ADD COLUMN updated_at DATETIME")
}

func rollbackWithLog(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
	}
	return err
}

// ResetAll wipes progress: every checklist, the active timer, daily
// advancement state, and scheduler bookkeeping. Reminder preferences are
// settings, not progress, and survive.
func (d *Database) ResetAll(ctx context.Context) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapSettingErr("reset all", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM checklists"); err != nil {
		return wrapSettingErr("reset all", rollbackWithLog(tx, err))
	}
	cleared := []string{
		KeyActiveTimer,
		KeyCurrentStep, KeyStartDate, KeyLastAdvanceDate,
		KeyPracticeReminderTime, KeyPracticeReminderDate,
		KeyLastHourlyKey, KeyLastAdvanceKey, KeyLastPracticeReminderKey, KeyLastPracticeStartDate,
	}
	for _, key := range cleared {
		if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
			return wrapSettingErr("reset all", rollbackWithLog(tx, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return wrapSettingErr("reset all", err)
	}
	return nil
}
