// Package league describes the parquet tables of the league history dataset.
package league

const (
	TableTeamDetails  = "team_details"
	TableGame         = "game"
	TableOtherStats   = "other_stats"
	TableDraftHistory = "draft_history"
)

// TeamDetailsRow is one row of the team reference table.
type TeamDetailsRow struct {
	TeamID             int64  `parquet:"team_id"`
	Abbreviation       string `parquet:"abbreviation"`
	Nickname           string `parquet:"nickname"`
	YearFounded        int64  `parquet:"yearfounded"`
	City               string `parquet:"city"`
	Arena              string `parquet:"arena"`
	Owner              string `parquet:"owner"`
	GeneralManager     string `parquet:"generalmanager"`
	HeadCoach          string `parquet:"headcoach"`
	DLeagueAffiliation string `parquet:"dleagueaffiliation"`
}

// GameRow is one game with home and away box scores. GameDate is stored as
// text ("2015-10-27 00:00:00"); its first four characters are the season
// key used for filtering.
type GameRow struct {
	SeasonID             string  `parquet:"season_id"`
	TeamIDHome           int64   `parquet:"team_id_home"`
	TeamAbbreviationHome string  `parquet:"team_abbreviation_home"`
	TeamNameHome         string  `parquet:"team_name_home"`
	GameID               string  `parquet:"game_id"`
	GameDate             string  `parquet:"game_date"`
	MatchupHome          string  `parquet:"matchup_home"`
	WLHome               string  `parquet:"wl_home"`
	FGMHome              float64 `parquet:"fgm_home"`
	FGAHome              float64 `parquet:"fga_home"`
	FGPctHome            float64 `parquet:"fg_pct_home"`
	FG3MHome             float64 `parquet:"fg3m_home"`
	FG3AHome             float64 `parquet:"fg3a_home"`
	FG3PctHome           float64 `parquet:"fg3_pct_home"`
	FTMHome              float64 `parquet:"ftm_home"`
	FTAHome              float64 `parquet:"fta_home"`
	FTPctHome            float64 `parquet:"ft_pct_home"`
	OREBHome             float64 `parquet:"oreb_home"`
	DREBHome             float64 `parquet:"dreb_home"`
	REBHome              float64 `parquet:"reb_home"`
	ASTHome              float64 `parquet:"ast_home"`
	STLHome              float64 `parquet:"stl_home"`
	BLKHome              float64 `parquet:"blk_home"`
	TOVHome              float64 `parquet:"tov_home"`
	PFHome               float64 `parquet:"pf_home"`
	PTSHome              float64 `parquet:"pts_home"`
	PlusMinusHome        float64 `parquet:"plus_minus_home"`
	TeamIDAway           int64   `parquet:"team_id_away"`
	TeamAbbreviationAway string  `parquet:"team_abbreviation_away"`
	TeamNameAway         string  `parquet:"team_name_away"`
	MatchupAway          string  `parquet:"matchup_away"`
	WLAway               string  `parquet:"wl_away"`
	FGMAway              float64 `parquet:"fgm_away"`
	FGAAway              float64 `parquet:"fga_away"`
	FGPctAway            float64 `parquet:"fg_pct_away"`
	FG3MAway             float64 `parquet:"fg3m_away"`
	FG3AAway             float64 `parquet:"fg3a_away"`
	FG3PctAway           float64 `parquet:"fg3_pct_away"`
	FTMAway              float64 `parquet:"ftm_away"`
	FTAAway              float64 `parquet:"fta_away"`
	FTPctAway            float64 `parquet:"ft_pct_away"`
	OREBAway             float64 `parquet:"oreb_away"`
	DREBAway             float64 `parquet:"dreb_away"`
	REBAway              float64 `parquet:"reb_away"`
	ASTAway              float64 `parquet:"ast_away"`
	STLAway              float64 `parquet:"stl_away"`
	BLKAway              float64 `parquet:"blk_away"`
	TOVAway              float64 `parquet:"tov_away"`
	PFAway               float64 `parquet:"pf_away"`
	PTSAway              float64 `parquet:"pts_away"`
	PlusMinusAway        float64 `parquet:"plus_minus_away"`
	SeasonType           string  `parquet:"season_type"`
}

// OtherStatsRow holds supplementary per-game numbers keyed by game_id.
type OtherStatsRow struct {
	GameID           string `parquet:"game_id"`
	LeagueID         string `parquet:"league_id"`
	PtsPaintHome     int64  `parquet:"pts_paint_home"`
	Pts2ndChanceHome int64  `parquet:"pts_2nd_chance_home"`
	PtsFastBreakHome int64  `parquet:"pts_fb_home"`
	LargestLeadHome  int64  `parquet:"largest_lead_home"`
	PtsPaintAway     int64  `parquet:"pts_paint_away"`
	Pts2ndChanceAway int64  `parquet:"pts_2nd_chance_away"`
	PtsFastBreakAway int64  `parquet:"pts_fb_away"`
	LargestLeadAway  int64  `parquet:"largest_lead_away"`
	LeadChanges      int64  `parquet:"lead_changes"`
	TimesTied        int64  `parquet:"times_tied"`
}

// DraftHistoryRow is one pick. Season is text, like the game season key.
type DraftHistoryRow struct {
	PersonID         int64  `parquet:"person_id"`
	PlayerName       string `parquet:"player_name"`
	Season           string `parquet:"season"`
	RoundNumber      int64  `parquet:"round_number"`
	RoundPick        int64  `parquet:"round_pick"`
	OverallPick      int64  `parquet:"overall_pick"`
	DraftType        string `parquet:"draft_type"`
	TeamID           int64  `parquet:"team_id"`
	TeamCity         string `parquet:"team_city"`
	TeamName         string `parquet:"team_name"`
	TeamAbbreviation string `parquet:"team_abbreviation"`
	Organization     string `parquet:"organization"`
	OrganizationType string `parquet:"organization_type"`
}
