package extractcli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/courtside/courtside/internal/extract"
	"github.com/courtside/courtside/internal/query"
)

const (
	DatasetGames = "games"
	DatasetPicks = "picks"
	DatasetAll   = "all"

	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Options struct {
	Engine  query.Engine
	Tables  extract.Tables
	Logger  *slog.Logger
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("courtside-extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	team := fs.String("team", "", "team nickname, e.g. Lakers")
	start := fs.Int("start", 0, "first season start year")
	end := fs.Int("end", 0, "last season start year")
	dataset := fs.String("dataset", DatasetAll, "games, picks or all")
	format := fs.String("format", FormatJSON, "json or csv")
	timeout := fs.Duration("timeout", durationOr(defaults.Timeout, 5*time.Minute), "overall extraction timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %s\n\n", strings.Join(fs.Args(), " "))
		writeUsage(stderr)
		return 2
	}
	if err := validateFlags(*team, *start, *end, *dataset, *format); err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n\n", err)
		writeUsage(stderr)
		return 2
	}
	if defaults.Engine == nil {
		_, _ = fmt.Fprintln(stderr, "query engine is not configured")
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	extractor, err := extract.New(ctx, defaults.Engine, extract.Options{
		TeamName: strings.TrimSpace(*team),
		Seasons:  extract.SeasonRange{Start: *start, End: *end},
		Tables:   defaults.Tables,
		Logger:   defaults.Logger,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "resolve team: %v\n", err)
		return 1
	}

	results, err := collect(ctx, extractor, *dataset)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "extract %s: %v\n", *dataset, err)
		return 1
	}

	switch *format {
	case FormatCSV:
		err = writeCSV(stdout, results[0].result)
	default:
		err = writeJSON(stdout, extractor, results)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

type namedResult struct {
	name   string
	result query.Result
}

func collect(ctx context.Context, extractor *extract.Extractor, dataset string) ([]namedResult, error) {
	switch dataset {
	case DatasetGames:
		games, err := extractor.GameStats(ctx)
		if err != nil {
			return nil, err
		}
		return []namedResult{{name: DatasetGames, result: games}}, nil
	case DatasetPicks:
		picks, err := extractor.DraftPicks(ctx)
		if err != nil {
			return nil, err
		}
		return []namedResult{{name: DatasetPicks, result: picks}}, nil
	default:
		games, picks, err := extractor.Run(ctx)
		if err != nil {
			return nil, err
		}
		return []namedResult{{name: DatasetGames, result: games}, {name: DatasetPicks, result: picks}}, nil
	}
}

func validateFlags(team string, start, end int, dataset, format string) error {
	if strings.TrimSpace(team) == "" {
		return errors.New("-team is required")
	}
	if start <= 0 || end <= 0 {
		return errors.New("-start and -end are required")
	}
	switch dataset {
	case DatasetGames, DatasetPicks, DatasetAll:
	default:
		return fmt.Errorf("unknown dataset %q", dataset)
	}
	switch format {
	case FormatJSON:
	case FormatCSV:
		if dataset == DatasetAll {
			return errors.New("-format csv needs -dataset games or -dataset picks")
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

type tableOutput struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type teamOutput struct {
	ID           int64  `json:"team_id"`
	Nickname     string `json:"nickname"`
	City         string `json:"city"`
	Abbreviation string `json:"abbreviation"`
}

type output struct {
	Team     teamOutput             `json:"team"`
	Seasons  string                 `json:"seasons"`
	Datasets map[string]tableOutput `json:"datasets"`
}

func writeJSON(w io.Writer, extractor *extract.Extractor, results []namedResult) error {
	team, _ := extractor.Team()
	doc := output{
		Team: teamOutput{
			ID:           team.ID,
			Nickname:     team.Nickname,
			City:         team.City,
			Abbreviation: team.Abbreviation,
		},
		Seasons:  extractor.Seasons().String(),
		Datasets: make(map[string]tableOutput, len(results)),
	}
	for _, named := range results {
		rows := named.result.Rows
		if rows == nil {
			rows = [][]any{}
		}
		doc.Datasets[named.name] = tableOutput{Columns: named.result.Columns, Rows: rows}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func writeCSV(w io.Writer, result query.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(result.Columns); err != nil {
		return err
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) && row[i] != nil {
				record[i] = formatCell(row[i])
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case time.Time:
		return typed.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(typed)
	}
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: courtside-extract -team <nickname> -start <year> -end <year> [flags]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "datasets:")
	_, _ = fmt.Fprintln(w, "  games   home and away games left-joined with supplementary stats")
	_, _ = fmt.Fprintln(w, "  picks   draft history from six seasons before -start through -end")
	_, _ = fmt.Fprintln(w, "  all     both, json output only")
}
