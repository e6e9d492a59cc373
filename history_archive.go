package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryArchive is the long-term interaction store. The in-memory history
// is bounded at 1000 records; everything learned is also appended here so
// older interactions stay searchable.
type HistoryArchive struct {
	dbPath string
	db     *sql.DB
}

// NewHistoryArchive opens (or creates) the archive database at dbPath
func NewHistoryArchive(dbPath string) (*HistoryArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %v", err)
	}

	archive := &HistoryArchive{dbPath: dbPath, db: db}
	if err := archive.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %v", err)
	}

	return archive, nil
}

func (ha *HistoryArchive) initializeSchema() error {
	_, err := ha.db.Exec(`
		CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL,
			action TEXT NOT NULL,
			success INTEGER NOT NULL,
			response TEXT,
			timestamp REAL NOT NULL,
			datetime TEXT NOT NULL,
			metadata TEXT
		)
	`)
	if err != nil {
		return err
	}

	_, err = ha.db.Exec(`CREATE INDEX IF NOT EXISTS idx_interactions_command ON interactions(command)`)
	return err
}

// Append stores one interaction record
func (ha *HistoryArchive) Append(record CommandRecord) error {
	metadata := ""
	if record.Metadata != nil {
		if data, err := json.Marshal(record.Metadata); err == nil {
			metadata = string(data)
		}
	}

	success := 0
	if record.Success {
		success = 1
	}

	_, err := ha.db.Exec(
		`INSERT INTO interactions (command, action, success, response, timestamp, datetime, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Command, record.Action, success, record.Response,
		record.Timestamp, record.DateTime, metadata,
	)
	return err
}

// Search returns archived interactions whose command contains the term,
// most recent first
func (ha *HistoryArchive) Search(term string, limit int) ([]CommandRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := ha.db.Query(
		`SELECT command, action, success, response, timestamp, datetime, metadata
		 FROM interactions
		 WHERE command LIKE ?
		 ORDER BY id DESC
		 LIMIT ?`,
		"%"+term+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CommandRecord
	for rows.Next() {
		var rec CommandRecord
		var success int
		var response, metadata sql.NullString

		if err := rows.Scan(&rec.Command, &rec.Action, &success, &response,
			&rec.Timestamp, &rec.DateTime, &metadata); err != nil {
			return nil, err
		}

		rec.Success = success != 0
		rec.Response = response.String
		if metadata.String != "" {
			var meta map[string]interface{}
			if err := json.Unmarshal([]byte(metadata.String), &meta); err == nil {
				rec.Metadata = meta
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of archived interactions
func (ha *HistoryArchive) Count() (int, error) {
	var count int
	err := ha.db.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&count)
	return count, err
}

// Close releases the underlying database handle
func (ha *HistoryArchive) Close() error {
	return ha.db.Close()
}
