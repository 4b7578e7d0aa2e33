package db

// Table names
const (
	tableFolders = "folders"
	tableFiles   = "files"
)

// Folders are keyed by (standard, board, kind, name). position keeps the
// insertion order of folders inside one key and of files inside one folder.
const createFoldersSQL = `
CREATE TABLE IF NOT EXISTS folders (
	id          VARCHAR PRIMARY KEY,
	standard    VARCHAR NOT NULL,
	board       VARCHAR NOT NULL,
	kind        VARCHAR NOT NULL,
	name        VARCHAR NOT NULL,
	link        VARCHAR NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	UNIQUE (standard, board, kind, name)
)`

const createFilesSQL = `
CREATE TABLE IF NOT EXISTS files (
	id          VARCHAR PRIMARY KEY,
	folder_id   VARCHAR NOT NULL,
	name        VARCHAR NOT NULL,
	size        VARCHAR NOT NULL,
	date        VARCHAR NOT NULL,
	kind        VARCHAR NOT NULL,
	link        VARCHAR NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

var createIndexesSQL = []string{
	"CREATE INDEX IF NOT EXISTS idx_folders_scope ON folders(standard, board, kind)",
	"CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id)",
}

// BuildSchemaSQL returns every statement needed to create the schema, in order
func BuildSchemaSQL() []string {
	stmts := []string{createFoldersSQL, createFilesSQL}
	return append(stmts, createIndexesSQL...)
}
