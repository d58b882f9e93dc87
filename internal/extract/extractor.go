// Package extract pulls one team's games and draft picks for a season range
// out of the league parquet tables.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/courtside/internal/league"
	"github.com/courtside/courtside/internal/observability"
	"github.com/courtside/courtside/internal/query"
)

const (
	OperationResolveTeam = "resolve_team"
	OperationGameStats   = "game_stats"
	OperationDraftPicks  = "draft_picks"
)

type Options struct {
	TeamName string
	Seasons  SeasonRange
	Tables   Tables
	Logger   *slog.Logger
}

// Extractor is bound to one team, resolved once in New. Every extraction
// issues its own query; engine and storage errors are returned as they are.
type Extractor struct {
	engine  query.Engine
	tables  Tables
	seasons SeasonRange
	logger  *slog.Logger
	team    *Team
}

func New(ctx context.Context, engine query.Engine, opts Options) (*Extractor, error) {
	if engine == nil {
		return nil, fmt.Errorf("query engine is required")
	}
	if err := opts.Tables.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.TeamName) == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrResolution)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Extractor{
		engine:  engine,
		tables:  opts.Tables,
		seasons: opts.Seasons,
		logger:  logger,
	}
	team, err := e.resolveTeam(ctx, opts.TeamName)
	if err != nil {
		return nil, err
	}
	e.team = &team
	return e, nil
}

// Team returns the resolved reference record. ok is false on an
// extractor that was not built by New.
func (e *Extractor) Team() (Team, bool) {
	if e == nil || e.team == nil {
		return Team{}, false
	}
	return *e.team, true
}

func (e *Extractor) TeamID() (int64, bool) {
	team, ok := e.Team()
	return team.ID, ok
}

func (e *Extractor) Seasons() SeasonRange {
	return e.seasons
}

// GameStats returns every game the team played home or away whose season
// key lies in the range, left-joined with the supplementary stats.
func (e *Extractor) GameStats(ctx context.Context) (query.Result, error) {
	teamID, err := e.requireTeam()
	if err != nil {
		return query.Result{}, err
	}
	return e.execute(ctx, OperationGameStats, query.Request{
		SQL: gameStatsSQL(teamID, e.seasons),
		Files: []query.TableFile{
			{TableName: league.TableGame, Location: e.tables.Game},
			{TableName: league.TableOtherStats, Location: e.tables.OtherStats},
		},
	})
}

// DraftPicks returns the team's draft history over the widened draft window.
func (e *Extractor) DraftPicks(ctx context.Context) (query.Result, error) {
	teamID, err := e.requireTeam()
	if err != nil {
		return query.Result{}, err
	}
	return e.execute(ctx, OperationDraftPicks, query.Request{
		SQL:   draftPicksSQL(teamID, e.seasons),
		Files: []query.TableFile{{TableName: league.TableDraftHistory, Location: e.tables.DraftHistory}},
	})
}

// Run extracts game stats, then draft picks. If draft picks fail the game
// stats already extracted are still returned alongside the error.
func (e *Extractor) Run(ctx context.Context) (query.Result, query.Result, error) {
	games, err := e.GameStats(ctx)
	if err != nil {
		return query.Result{}, query.Result{}, err
	}
	picks, err := e.DraftPicks(ctx)
	if err != nil {
		return games, query.Result{}, err
	}
	return games, picks, nil
}

func (e *Extractor) resolveTeam(ctx context.Context, name string) (Team, error) {
	result, err := e.execute(ctx, OperationResolveTeam, query.Request{
		SQL:   resolveTeamSQL(name),
		Files: []query.TableFile{{TableName: league.TableTeamDetails, Location: e.tables.TeamDetails}},
	})
	if err != nil {
		return Team{}, err
	}
	switch result.Len() {
	case 0:
		return Team{}, fmt.Errorf("%w: team %q not found in %s", ErrResolution, name, league.TableTeamDetails)
	case 1:
	default:
		return Team{}, fmt.Errorf("%w: team %q matched %d rows in %s", ErrResolution, name, result.Len(), league.TableTeamDetails)
	}

	rawID, _ := result.Value(0, "team_id")
	id, err := asInt64(rawID)
	if err != nil {
		return Team{}, fmt.Errorf("%w: team %q: %v", ErrResolution, name, err)
	}
	team := Team{
		ID:           id,
		Nickname:     stringValue(result, "nickname"),
		City:         stringValue(result, "city"),
		HeadCoach:    stringValue(result, "headcoach"),
		Abbreviation: stringValue(result, "abbreviation"),
	}
	e.logger.DebugContext(ctx, "team resolved",
		slog.String("run_id", observability.RunIDFromContext(ctx)),
		slog.String("team", team.Nickname),
		slog.Int64("team_id", team.ID),
	)
	return team, nil
}

func (e *Extractor) requireTeam() (int64, error) {
	if e == nil || e.team == nil {
		return 0, ErrPrecondition
	}
	return e.team.ID, nil
}

func (e *Extractor) execute(ctx context.Context, operation string, request query.Request) (query.Result, error) {
	start := time.Now()
	result, err := e.engine.Execute(ctx, request)
	observability.ObserveExtraction(operation, result.Len(), result.ScannedBytes, time.Since(start), err)
	if err != nil {
		return query.Result{}, err
	}
	if operation != OperationResolveTeam {
		e.logger.DebugContext(ctx, "extraction complete",
			slog.String("run_id", observability.RunIDFromContext(ctx)),
			slog.String("operation", operation),
			slog.Int64("team_id", e.team.ID),
			slog.String("seasons", e.seasons.String()),
			slog.Int("rows", result.Len()),
			slog.Int64("scanned_bytes", result.ScannedBytes),
			slog.String("duration", result.Duration.String()),
		)
	}
	return result, nil
}

func asInt64(value any) (int64, error) {
	switch typed := value.(type) {
	case int64:
		return typed, nil
	case int32:
		return int64(typed), nil
	case int16:
		return int64(typed), nil
	case int8:
		return int64(typed), nil
	case int:
		return int64(typed), nil
	case uint32:
		return int64(typed), nil
	case uint16:
		return int64(typed), nil
	case uint8:
		return int64(typed), nil
	case uint64:
		if typed > 1<<63-1 {
			return 0, fmt.Errorf("team id %d overflows int64", typed)
		}
		return int64(typed), nil
	case float64:
		if typed != float64(int64(typed)) {
			return 0, fmt.Errorf("team id %v is not integral", typed)
		}
		return int64(typed), nil
	case *big.Int:
		if !typed.IsInt64() {
			return 0, fmt.Errorf("team id %s overflows int64", typed)
		}
		return typed.Int64(), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse team id %q: %w", typed, err)
		}
		return id, nil
	case nil:
		return 0, fmt.Errorf("team id is null")
	default:
		return 0, fmt.Errorf("unsupported team id type %T", value)
	}
}

func stringValue(result query.Result, column string) string {
	value, ok := result.Value(0, column)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
