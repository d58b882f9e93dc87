package extract

import (
	"errors"
	"fmt"

	"github.com/courtside/courtside/internal/league"
	"github.com/courtside/courtside/internal/storage"
)

var (
	// ErrResolution means the team name matched zero or several reference rows.
	ErrResolution = errors.New("team resolution failed")
	// ErrPrecondition means an extraction ran on an extractor without a resolved team.
	ErrPrecondition = errors.New("team id is not resolved")
)

// DraftLookbackYears widens the draft window so that players drafted before
// the first requested season are still included.
const DraftLookbackYears = 6

// Team is the reference record a team name resolves to.
type Team struct {
	ID           int64
	Nickname     string
	City         string
	HeadCoach    string
	Abbreviation string
}

// SeasonRange is a closed interval of season-start years.
type SeasonRange struct {
	Start int
	End   int
}

func (r SeasonRange) DraftWindow() SeasonRange {
	return SeasonRange{Start: r.Start - DraftLookbackYears, End: r.End}
}

func (r SeasonRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Tables holds the remote location of each source table.
type Tables struct {
	TeamDetails  string
	Game         string
	OtherStats   string
	DraftHistory string
}

// DefaultTables lays the tables out as scheme://container/<table>.parquet.
func DefaultTables(scheme, container string) (Tables, error) {
	var tables Tables
	for _, entry := range []struct {
		name string
		dst  *string
	}{
		{league.TableTeamDetails, &tables.TeamDetails},
		{league.TableGame, &tables.Game},
		{league.TableOtherStats, &tables.OtherStats},
		{league.TableDraftHistory, &tables.DraftHistory},
	} {
		location, err := storage.BuildTableLocation(scheme, container, entry.name)
		if err != nil {
			return Tables{}, err
		}
		*entry.dst = location
	}
	return tables, nil
}

func (t Tables) validate() error {
	switch {
	case t.TeamDetails == "":
		return fmt.Errorf("%s location is required", league.TableTeamDetails)
	case t.Game == "":
		return fmt.Errorf("%s location is required", league.TableGame)
	case t.OtherStats == "":
		return fmt.Errorf("%s location is required", league.TableOtherStats)
	case t.DraftHistory == "":
		return fmt.Errorf("%s location is required", league.TableDraftHistory)
	}
	return nil
}
