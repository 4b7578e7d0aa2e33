package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/nrjt/eduplatform/internal/types"
)

var (
	// ErrFolderNotFound is returned when a folder does not exist under the given key
	ErrFolderNotFound = errors.New("folder not found")
	// ErrFileNotFound is returned when a folder holds no file of the given name
	ErrFileNotFound = errors.New("file not found")
)

// DB wraps a DuckDB connection holding folders and their files
type DB struct {
	conn *sql.DB
	mu   sync.Mutex // Protects all database operations from concurrent access
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.InitializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// InitializeSchema creates the folders and files tables when missing.
// Existing data is kept.
func (db *DB) InitializeSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, stmt := range BuildSchemaSQL() {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ListFolders returns the folders of one (scope, kind) key with their files,
// both in insertion order.
func (db *DB) ListFolders(scope types.Scope, kind types.Kind) ([]types.FolderEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
SELECT f.id, f.name, f.link, fi.name, fi.size, fi.date, fi.kind, fi.link
FROM folders f
LEFT JOIN files fi ON fi.folder_id = f.id
WHERE f.standard = ? AND f.board = ? AND f.kind = ?
ORDER BY f.position, fi.position`

	rows, err := db.conn.Query(query, scope.Standard, scope.Board, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query folders of %s/%s: %w", scope, kind, err)
	}
	defer rows.Close()

	folders := []types.FolderEntry{}
	index := make(map[string]int)
	for rows.Next() {
		var folderID, folderName, folderLink string
		var fileName, fileSize, fileDate, fileKind, fileLink sql.NullString
		if err := rows.Scan(&folderID, &folderName, &folderLink, &fileName, &fileSize, &fileDate, &fileKind, &fileLink); err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", err)
		}

		i, seen := index[folderID]
		if !seen {
			folders = append(folders, types.FolderEntry{
				FolderName: folderName,
				Files:      []types.FileEntry{},
				Link:       folderLink,
			})
			i = len(folders) - 1
			index[folderID] = i
		}

		// LEFT JOIN yields NULL file columns for empty folders
		if !fileName.Valid {
			continue
		}
		folders[i].Files = append(folders[i].Files, types.FileEntry{
			Name: fileName.String,
			Size: fileSize.String,
			Date: fileDate.String,
			Type: types.Kind(fileKind.String),
			Link: fileLink.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	return folders, nil
}

// ApplyUpload stores an upload: the folder is created at the end of the list
// when missing, an attached file is appended to it, and a non-empty link-only
// descriptor becomes the folder's reference link.
func (db *DB) ApplyUpload(scope types.Scope, kind types.Kind, folderName string, desc types.FileDescriptor) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	folderID, err := ensureFolder(tx, scope, kind, folderName)
	if err != nil {
		return err
	}

	switch desc.Kind() {
	case types.DescriptorAttached:
		file, _ := desc.File()
		if err := insertFile(tx, folderID, kind, file); err != nil {
			return err
		}
	case types.DescriptorLinkOnly:
		if link := desc.Link(); link != "" {
			if _, err := tx.Exec("UPDATE folders SET link = ? WHERE id = ?", link, folderID); err != nil {
				return fmt.Errorf("failed to set link of folder %s: %w", folderName, err)
			}
		}
	default:
		return fmt.Errorf("file descriptor has no variant")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upload: %w", err)
	}
	return nil
}

// ensureFolder returns the ID of the named folder, creating it when missing
func ensureFolder(tx *sql.Tx, scope types.Scope, kind types.Kind, name string) (string, error) {
	var id string
	err := tx.QueryRow(
		"SELECT id FROM folders WHERE standard = ? AND board = ? AND kind = ? AND name = ?",
		scope.Standard, scope.Board, string(kind), name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to look up folder %s: %w", name, err)
	}

	var position int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM folders WHERE standard = ? AND board = ? AND kind = ?",
		scope.Standard, scope.Board, string(kind),
	).Scan(&position)
	if err != nil {
		return "", fmt.Errorf("failed to compute folder position: %w", err)
	}

	id = uuid.New().String()
	_, err = tx.Exec(
		"INSERT INTO folders (id, standard, board, kind, name, link, position, created_at) VALUES (?, ?, ?, ?, ?, '', ?, ?)",
		id, scope.Standard, scope.Board, string(kind), name, position, time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return id, nil
}

// insertFile appends a file at the end of a folder
func insertFile(tx *sql.Tx, folderID string, kind types.Kind, file types.FileEntry) error {
	var position int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM files WHERE folder_id = ?", folderID,
	).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute file position: %w", err)
	}

	fileKind := file.Type
	if fileKind == "" {
		fileKind = kind
	}

	_, err := tx.Exec(
		"INSERT INTO files (id, folder_id, name, size, date, kind, link, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		uuid.New().String(), folderID, file.Name, file.Size, file.Date, string(fileKind), file.Link, position, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file %s: %w", file.Name, err)
	}
	return nil
}

// DeleteFolder removes a folder and its files
func (db *DB) DeleteFolder(scope types.Scope, kind types.Kind, folderName string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(
		"SELECT id FROM folders WHERE standard = ? AND board = ? AND kind = ? AND name = ?",
		scope.Standard, scope.Board, string(kind), folderName,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, folderName)
	}
	if err != nil {
		return fmt.Errorf("failed to look up folder %s: %w", folderName, err)
	}

	if _, err := tx.Exec("DELETE FROM files WHERE folder_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete files of %s: %w", folderName, err)
	}
	if _, err := tx.Exec("DELETE FROM folders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", folderName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// DeleteAll removes every folder and file
func (db *DB) DeleteAll() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	if _, err := db.conn.Exec("DELETE FROM folders"); err != nil {
		return fmt.Errorf("failed to delete folders: %w", err)
	}
	return nil
}

// CountRows returns the number of rows in a table
func (db *DB) CountRows(table string) (int, error) {
	if table != tableFolders && table != tableFiles {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return count, nil
}

// GetTableInfo returns row counts of every table
func (db *DB) GetTableInfo() ([]types.TableInfo, error) {
	var info []types.TableInfo
	for _, table := range []string{tableFolders, tableFiles} {
		count, err := db.CountRows(table)
		if err != nil {
			return nil, err
		}
		info = append(info, types.TableInfo{Name: table, RowCount: count})
	}
	return info, nil
}
