package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dorlog/backend/internal/api"
	dbstore "github.com/dorlog/backend/internal/db"
	"github.com/dorlog/backend/internal/middleware"
	"github.com/dorlog/backend/internal/utils"
)

func main() {
	addr := utils.SafeEnv("DORLOG_ADDR", ":8080")
	reportDir := utils.SafeEnv("DORLOG_REPORT_DIR", "reports")
	if v := os.Getenv("DORLOG_VERSION"); v != "" {
		api.Version = v
	}

	store, err := selectStore()
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store, reportDir).Register(mux)

	handler := middleware.CORS(
		middleware.SecureHeaders(
			middleware.NoStore(
				middleware.LocaleMiddleware(
					middleware.WithAuth(mux)))))

	log.Printf("DorLog server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// selectStore picks the backend from the environment:
// Firestore when DORLOG_FIRESTORE_PROJECT is set, SQLite when
// DORLOG_SQLITE_PATH is set, otherwise in-memory (with an optional JSON
// snapshot at DORLOG_DB_PATH).
func selectStore() (api.Store, error) {
	if project := os.Getenv("DORLOG_FIRESTORE_PROJECT"); project != "" {
		store, err := dbstore.NewFirestoreStore(context.Background(), project, os.Getenv("DORLOG_FIRESTORE_CREDENTIALS"))
		if err == nil {
			log.Printf("using Firestore backend (project %s)", project)
			return store, nil
		}
		// Surfaced once; the server still comes up on a local backend.
		log.Printf("firestore unavailable (project %s): %v; falling back", project, err)
	}

	if sqlitePath := os.Getenv("DORLOG_SQLITE_PATH"); sqlitePath != "" {
		migrationsDir := os.Getenv("DORLOG_MIGRATIONS_DIR")
		if err := MigrateIfNeeded(os.Getenv("DORLOG_DB_PATH"), sqlitePath, migrationsDir); err != nil {
			return nil, fmt.Errorf("legacy snapshot migration: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(sqlitePath))
		sqliteDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := dbstore.RunMigrations(sqliteDB, migrationsDir); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		store, err := dbstore.NewStore(sqliteDB)
		if err != nil {
			return nil, err
		}
		log.Printf("using SQLite backend (%s)", sqlitePath)
		return store, nil
	}

	if snapshotPath := os.Getenv("DORLOG_DB_PATH"); snapshotPath != "" {
		log.Printf("using in-memory backend with snapshot %s", snapshotPath)
		return api.NewMemoryStoreFromPath(snapshotPath), nil
	}
	log.Printf("using in-memory backend (no persistence)")
	return api.NewMemoryStore(), nil
}
