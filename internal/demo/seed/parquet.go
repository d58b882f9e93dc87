package seed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/courtside/courtside/internal/league"
	"github.com/courtside/courtside/internal/storage"
)

const parquetContentType = "application/vnd.apache.parquet"

func EncodeParquet[T any](rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("rows are required")
	}
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[T](buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes every table of the dataset and stores it as <table>.parquet.
func Write(ctx context.Context, store storage.ObjectStore, dataset Dataset) ([]storage.ObjectInfo, error) {
	if store == nil {
		return nil, fmt.Errorf("object store is required")
	}

	encoded := []struct {
		table  string
		encode func() ([]byte, error)
	}{
		{league.TableTeamDetails, func() ([]byte, error) { return EncodeParquet(dataset.Teams) }},
		{league.TableGame, func() ([]byte, error) { return EncodeParquet(dataset.Games) }},
		{league.TableOtherStats, func() ([]byte, error) { return EncodeParquet(dataset.OtherStats) }},
		{league.TableDraftHistory, func() ([]byte, error) { return EncodeParquet(dataset.DraftHistory) }},
	}

	infos := make([]storage.ObjectInfo, 0, len(encoded))
	for _, table := range encoded {
		data, err := table.encode()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", table.table, err)
		}
		info, err := store.Put(ctx, table.table+".parquet", bytes.NewReader(data), int64(len(data)), storage.PutOptions{ContentType: parquetContentType})
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", table.table, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
