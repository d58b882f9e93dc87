package duckdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/parquet-go/parquet-go"

	"github.com/courtside/courtside/internal/query"
	"github.com/courtside/courtside/internal/storage"
)

type teamRow struct {
	TeamID   int64  `parquet:"team_id"`
	Nickname string `parquet:"nickname"`
}

type gameRow struct {
	GameID     string `parquet:"game_id"`
	TeamIDHome int64  `parquet:"team_id_home"`
}

func TestExecuteReadsParquetThroughFileSystem(t *testing.T) {
	teams := mustParquet(t, []teamRow{{TeamID: 1, Nickname: "Lakers"}, {TeamID: 2, Nickname: "Celtics"}})
	fs := &memoryFS{objects: map[string][]byte{"abfs://data/team_details.parquet": teams}}
	engine := NewEngine(fs, 2)

	result, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT COUNT(*) AS c FROM team_details;",
		Files: []query.TableFile{{TableName: "team_details", Location: "abfs://data/team_details.parquet"}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[0][0] != int64(2) {
		t.Fatalf("count = %#v", result.Rows[0][0])
	}
	if result.ScannedFiles != 1 || result.ScannedBytes != int64(len(teams)) {
		t.Fatalf("scanned files/bytes = %d/%d", result.ScannedFiles, result.ScannedBytes)
	}
}

func TestExecuteJoinsMultipleViews(t *testing.T) {
	teams := mustParquet(t, []teamRow{{TeamID: 1, Nickname: "Lakers"}, {TeamID: 2, Nickname: "Celtics"}})
	games := mustParquet(t, []gameRow{{GameID: "g1", TeamIDHome: 1}, {GameID: "g2", TeamIDHome: 1}, {GameID: "g3", TeamIDHome: 2}})
	fs := &memoryFS{objects: map[string][]byte{
		"abfs://data/team_details.parquet": teams,
		"abfs://data/game.parquet":         games,
	}}
	engine := NewEngine(fs, 0)

	result, err := engine.Execute(context.Background(), query.Request{
		SQL: `SELECT t.nickname, COUNT(*) AS games
FROM game g JOIN team_details t ON g.team_id_home = t.team_id
GROUP BY t.nickname ORDER BY t.nickname`,
		Files: []query.TableFile{
			{TableName: "team_details", Location: "abfs://data/team_details.parquet"},
			{TableName: "game", Location: "abfs://data/game.parquet"},
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Columns) != 2 || result.Columns[0] != "nickname" {
		t.Fatalf("columns = %v", result.Columns)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[0][0] != "Celtics" || result.Rows[0][1] != int64(1) {
		t.Fatalf("row 0 = %#v", result.Rows[0])
	}
	if result.Rows[1][0] != "Lakers" || result.Rows[1][1] != int64(2) {
		t.Fatalf("row 1 = %#v", result.Rows[1])
	}
}

func TestExecutePropagatesMissingObject(t *testing.T) {
	engine := NewEngine(&memoryFS{objects: map[string][]byte{}}, 1)

	_, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT * FROM game",
		Files: []query.TableFile{{TableName: "game", Location: "abfs://data/game.parquet"}},
	})
	if !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("Execute() error = %v, want ErrObjectNotFound", err)
	}
}

func TestExecuteRejectsInvalidRequests(t *testing.T) {
	engine := NewEngine(&memoryFS{}, 1)
	if _, err := engine.Execute(context.Background(), query.Request{SQL: " ; "}); err == nil {
		t.Fatal("expected sql required error")
	}
	if _, err := engine.Execute(context.Background(), query.Request{SQL: "SELECT 1"}); err == nil {
		t.Fatal("expected missing files error")
	}
	_, err := engine.Execute(context.Background(), query.Request{
		SQL: "SELECT 1",
		Files: []query.TableFile{
			{TableName: "game", Location: "abfs://data/a.parquet"},
			{TableName: "game", Location: "abfs://data/b.parquet"},
		},
	})
	if err == nil {
		t.Fatal("expected duplicate table error")
	}
}

func TestExecuteConfiguresThreadsBeforeQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	fs := &memoryFS{objects: map[string][]byte{"abfs://data/game.parquet": []byte("PAR1")}}
	engine := &Engine{FS: fs, open: func() (*sql.DB, error) { return db, nil }}

	mock.ExpectExec(regexp.QuoteMeta("SET threads TO 16")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE OR REPLACE VIEW "game" AS SELECT \* FROM read_parquet\('.*game_0\.parquet'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT game_id FROM game")).
		WillReturnRows(sqlmock.NewRows([]string{"game_id"}).AddRow([]byte("0021500001")))
	mock.ExpectClose()

	result, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT game_id FROM game",
		Files: []query.TableFile{{TableName: "game", Location: "abfs://data/game.parquet"}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Rows[0][0] != "0021500001" {
		t.Fatalf("value = %#v, want normalized string", result.Rows[0][0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestExecuteReturnsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	fs := &memoryFS{objects: map[string][]byte{"abfs://data/game.parquet": []byte("PAR1")}}
	engine := &Engine{FS: fs, Threads: 4, open: func() (*sql.DB, error) { return db, nil }}
	boom := errors.New("binder error")

	mock.ExpectExec(regexp.QuoteMeta("SET threads TO 4")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE OR REPLACE VIEW").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT nope").WillReturnError(boom)

	_, err = engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT nope FROM game",
		Files: []query.TableFile{{TableName: "game", Location: "abfs://data/game.parquet"}},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Execute() error = %v, want %v", err, boom)
	}
}

func mustParquet[T any](t *testing.T, rows []T) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[T](buf)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close parquet writer: %v", err)
	}
	return buf.Bytes()
}

type memoryFS struct {
	objects map[string][]byte
}

func (m *memoryFS) Open(_ context.Context, location string) (io.ReadCloser, error) {
	body, ok := m.objects[location]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}
