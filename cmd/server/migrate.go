package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	dbstore "github.com/dorlog/backend/internal/db"
	"github.com/dorlog/backend/internal/models"
)

// legacySnapshot mirrors the in-memory store's JSON snapshot layout.
type legacySnapshot struct {
	Entries   map[string]*models.DiaryEntry `json:"entries"`
	Users     map[string]*models.User       `json:"users"`
	Reminders []*models.Reminder            `json:"reminders"`
	Audit     []models.AuditEntry           `json:"audit"`
}

// MigrateIfNeeded imports a JSON snapshot into a fresh SQLite database.
// It is a no-op when the SQLite file already exists or no snapshot is found.
func MigrateIfNeeded(snapshotPath, sqlitePath, migrationsDir string) error {
	if sqlitePath == "" {
		return errors.New("sqlite path is required")
	}
	if _, err := os.Stat(sqlitePath); err == nil {
		return nil // already migrated
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check sqlite file: %w", err)
	}
	if snapshotPath == "" {
		return nil
	}

	b, err := os.ReadFile(snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read legacy snapshot: %w", err)
	}
	var snap legacySnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return fmt.Errorf("decode legacy snapshot: %w", err)
	}

	log.Printf("First run detected, starting one-time data migration from legacy snapshot %s...", snapshotPath)

	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(sqlitePath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := sqliteDB.Close(); cerr != nil {
			log.Printf("warning: failed to close sqlite db: %v", cerr)
		}
	}()

	if err := dbstore.RunMigrations(sqliteDB, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	dst, err := dbstore.NewSQLiteStore(sqliteDB)
	if err != nil {
		return fmt.Errorf("init sqlite store: %w", err)
	}

	if err := copySnapshotToStore(&snap, dst); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}

	log.Printf("Data migration completed successfully.")
	return nil
}

func copySnapshotToStore(snap *legacySnapshot, dst *dbstore.SQLiteStore) error {
	for _, u := range snap.Users {
		if u == nil {
			continue
		}
		if err := dst.AddUser(u); err != nil {
			return err
		}
	}
	for id, e := range snap.Entries {
		if e == nil {
			continue
		}
		if e.ID == "" {
			e.ID = id
		}
		if err := dst.PutDiaryEntry(e); err != nil {
			return err
		}
	}
	for _, r := range snap.Reminders {
		if r == nil {
			continue
		}
		if err := dst.AddReminder(r); err != nil {
			return err
		}
	}
	for _, entry := range snap.Audit {
		dst.AddAudit(entry)
	}
	return nil
}
