package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// gameColumns is the projection of the game table, in output order, after
// the derived season column.
var gameColumns = []string{
	"season_id", "game_id", "game_date",
	"wl_home", "fgm_home", "fga_home", "fg_pct_home", "fg3m_home", "fg3a_home", "fg3_pct_home",
	"ftm_home", "fta_home", "ft_pct_home", "oreb_home", "dreb_home", "reb_home",
	"ast_home", "stl_home", "blk_home", "tov_home", "pf_home", "pts_home", "plus_minus_home",
	"team_id_away", "team_abbreviation_away", "team_name_away", "matchup_away",
	"wl_away", "fgm_away", "fga_away", "fg_pct_away", "fg3m_away", "fg3a_away", "fg3_pct_away",
	"ftm_away", "fta_away", "ft_pct_away", "oreb_away", "dreb_away", "reb_away",
	"ast_away", "stl_away", "blk_away", "tov_away", "pf_away", "pts_away", "plus_minus_away",
	"team_id_home",
}

func resolveTeamSQL(teamName string) string {
	return fmt.Sprintf(`SELECT t.team_id
	, t.nickname
	, t.city
	, t.headcoach
	, t.abbreviation
FROM team_details AS t
WHERE t.nickname = %s`, quoteString(teamName))
}

// gameStatsSQL keeps games whose four-character date prefix falls inside the
// range. The comparison is on strings, not numbers.
func gameStatsSQL(teamID int64, seasons SeasonRange) string {
	var projection strings.Builder
	for _, column := range gameColumns {
		projection.WriteString("\n\t\t, g.")
		projection.WriteString(column)
	}

	return fmt.Sprintf(`WITH team_games AS (
	SELECT substr(CAST(g.game_date AS VARCHAR), 1, 4) AS season%s
	FROM game AS g
	WHERE g.team_id_home = %d OR g.team_id_away = %d
),
supplementary AS (
	SELECT * FROM other_stats
)
SELECT *
FROM (
	SELECT * FROM team_games AS tg WHERE tg.season >= %s AND tg.season <= %s
) AS c
LEFT JOIN supplementary AS d ON c.game_id = d.game_id`,
		projection.String(),
		teamID, teamID,
		seasonLiteral(seasons.Start), seasonLiteral(seasons.End),
	)
}

func draftPicksSQL(teamID int64, seasons SeasonRange) string {
	window := seasons.DraftWindow()
	return fmt.Sprintf(`WITH team_picks AS (
	SELECT * FROM draft_history AS dh WHERE dh.team_id = %d
)
SELECT * FROM team_picks AS p WHERE p.season >= %s AND p.season <= %s`,
		teamID,
		seasonLiteral(window.Start), seasonLiteral(window.End),
	)
}

func seasonLiteral(year int) string {
	return quoteString(strconv.Itoa(year))
}

func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
