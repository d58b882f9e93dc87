package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/courtside/courtside/internal/query"
	"github.com/courtside/courtside/internal/storage"
)

// DefaultThreads is the intra-query parallelism configured on every connection.
const DefaultThreads = 16

// Engine runs one statement per call on a fresh in-process DuckDB database.
// Remote files are staged through FS into a scratch directory and exposed
// to the statement as views; nothing is reused between calls.
type Engine struct {
	FS      storage.FileSystem
	Threads int

	open func() (*sql.DB, error)
}

func NewEngine(fs storage.FileSystem, threads int) *Engine {
	return &Engine{FS: fs, Threads: threads}
}

func (e *Engine) Execute(ctx context.Context, request query.Request) (query.Result, error) {
	sqlText := stripTrailingSemicolons(request.SQL)
	if sqlText == "" {
		return query.Result{}, fmt.Errorf("sql is required")
	}
	if len(request.Files) == 0 {
		return query.Result{}, fmt.Errorf("at least one table file is required")
	}
	if e.FS == nil {
		return query.Result{}, fmt.Errorf("file system is required")
	}

	start := time.Now()
	workDir, err := os.MkdirTemp("", "courtside-query-")
	if err != nil {
		return query.Result{}, fmt.Errorf("create query temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	localPaths, scannedBytes, err := e.stage(ctx, workDir, request.Files)
	if err != nil {
		return query.Result{}, err
	}

	db, err := e.openDB()
	if err != nil {
		return query.Result{}, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	conn, err := db.Conn(ctx)
	if err != nil {
		return query.Result{}, fmt.Errorf("acquire duckdb connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET threads TO %d", e.threads())); err != nil {
		return query.Result{}, fmt.Errorf("configure threads: %w", err)
	}
	for _, file := range request.Files {
		viewSQL := fmt.Sprintf(`CREATE OR REPLACE VIEW %s AS SELECT * FROM read_parquet(%s)`, quoteIdent(file.TableName), quoteString(localPaths[file.TableName]))
		if _, err := conn.ExecContext(ctx, viewSQL); err != nil {
			return query.Result{}, fmt.Errorf("create view for table %q: %w", file.TableName, err)
		}
	}

	columns, rows, err := collect(ctx, conn, sqlText)
	if err != nil {
		return query.Result{}, err
	}

	return query.Result{
		Columns:      columns,
		Rows:         rows,
		ScannedFiles: len(request.Files),
		ScannedBytes: scannedBytes,
		Duration:     time.Since(start),
	}, nil
}

func (e *Engine) stage(ctx context.Context, workDir string, files []query.TableFile) (map[string]string, int64, error) {
	localPaths := make(map[string]string, len(files))
	var scannedBytes int64

	for index, file := range files {
		if strings.TrimSpace(file.TableName) == "" {
			return nil, 0, fmt.Errorf("table name is required for %q", file.Location)
		}
		if _, dup := localPaths[file.TableName]; dup {
			return nil, 0, fmt.Errorf("table %q is bound more than once", file.TableName)
		}

		reader, err := e.FS.Open(ctx, file.Location)
		if err != nil {
			return nil, 0, fmt.Errorf("open %q: %w", file.Location, err)
		}
		localPath := filepath.Join(workDir, fmt.Sprintf("%s_%d.parquet", sanitizeFileComponent(file.TableName), index))
		written, err := writeFile(localPath, reader)
		_ = reader.Close()
		if err != nil {
			return nil, 0, fmt.Errorf("stage %q: %w", file.Location, err)
		}

		localPaths[file.TableName] = localPath
		scannedBytes += written
	}
	return localPaths, scannedBytes, nil
}

func collect(ctx context.Context, conn *sql.Conn, sqlText string) ([]string, [][]any, error) {
	rows, err := conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate rows: %w", err)
	}
	return columns, resultRows, nil
}

func (e *Engine) openDB() (*sql.DB, error) {
	if e.open != nil {
		return e.open()
	}
	return sql.Open("duckdb", "")
}

func (e *Engine) threads() int {
	if e.Threads > 0 {
		return e.Threads
	}
	return DefaultThreads
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func quoteString(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}

func sanitizeFileComponent(value string) string {
	value = strings.ReplaceAll(value, "/", "_")
	value = strings.ReplaceAll(value, "..", "_")
	if value == "" {
		return "table"
	}
	return value
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}

var _ query.Engine = (*Engine)(nil)
