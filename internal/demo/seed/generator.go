package seed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/courtside/courtside/internal/league"
)

var franchises = []league.TeamDetailsRow{
	{TeamID: 1610612747, Abbreviation: "LAL", Nickname: "Lakers", YearFounded: 1948, City: "Los Angeles", Arena: "Crypto.com Arena", HeadCoach: "JJ Redick"},
	{TeamID: 1610612738, Abbreviation: "BOS", Nickname: "Celtics", YearFounded: 1946, City: "Boston", Arena: "TD Garden", HeadCoach: "Joe Mazzulla"},
	{TeamID: 1610612744, Abbreviation: "GSW", Nickname: "Warriors", YearFounded: 1946, City: "Golden State", Arena: "Chase Center", HeadCoach: "Steve Kerr"},
	{TeamID: 1610612741, Abbreviation: "CHI", Nickname: "Bulls", YearFounded: 1966, City: "Chicago", Arena: "United Center", HeadCoach: "Billy Donovan"},
	{TeamID: 1610612752, Abbreviation: "NYK", Nickname: "Knicks", YearFounded: 1946, City: "New York", Arena: "Madison Square Garden", HeadCoach: "Mike Brown"},
	{TeamID: 1610612748, Abbreviation: "MIA", Nickname: "Heat", YearFounded: 1988, City: "Miami", Arena: "Kaseya Center", HeadCoach: "Erik Spoelstra"},
	{TeamID: 1610612759, Abbreviation: "SAS", Nickname: "Spurs", YearFounded: 1976, City: "San Antonio", Arena: "Frost Bank Center", HeadCoach: "Mitch Johnson"},
	{TeamID: 1610612751, Abbreviation: "BKN", Nickname: "Nets", YearFounded: 1976, City: "Brooklyn", Arena: "Barclays Center", HeadCoach: "Jordi Fernandez"},
}

// Dataset holds one generated copy of every league table.
type Dataset struct {
	Teams        []league.TeamDetailsRow
	Games        []league.GameRow
	OtherStats   []league.OtherStatsRow
	DraftHistory []league.DraftHistoryRow
}

type Generator struct {
	rnd   *rand.Rand
	teams []league.TeamDetailsRow
}

// NewGenerator returns a deterministic generator over the first teamCount
// franchises (at least two, at most all of them).
func NewGenerator(seed int64, teamCount int) *Generator {
	if teamCount < 2 {
		teamCount = 2
	}
	if teamCount > len(franchises) {
		teamCount = len(franchises)
	}
	teams := make([]league.TeamDetailsRow, teamCount)
	copy(teams, franchises[:teamCount])
	return &Generator{rnd: rand.New(rand.NewSource(seed)), teams: teams}
}

// Generate builds a double round robin per season plus a two-round draft.
// Every fifth game has no supplementary stats row.
func (g *Generator) Generate(firstSeason, lastSeason int) (Dataset, error) {
	if firstSeason < 1000 || lastSeason > 9999 {
		return Dataset{}, fmt.Errorf("seasons must be four-digit years")
	}
	if firstSeason > lastSeason {
		return Dataset{}, fmt.Errorf("first season %d is after last season %d", firstSeason, lastSeason)
	}

	dataset := Dataset{Teams: append([]league.TeamDetailsRow(nil), g.teams...)}
	var personID int64 = 200000

	for season := firstSeason; season <= lastSeason; season++ {
		sequence := 0
		for h, home := range g.teams {
			for a, away := range g.teams {
				if h == a {
					continue
				}
				sequence++
				game := g.game(season, sequence, home, away)
				dataset.Games = append(dataset.Games, game)
				if sequence%5 != 0 {
					dataset.OtherStats = append(dataset.OtherStats, g.otherStats(game.GameID))
				}
			}
		}

		overall := int64(0)
		for round := int64(1); round <= 2; round++ {
			for pick, team := range g.teams {
				overall++
				personID++
				dataset.DraftHistory = append(dataset.DraftHistory, league.DraftHistoryRow{
					PersonID:         personID,
					PlayerName:       fmt.Sprintf("Prospect %d-%02d", season, overall),
					Season:           fmt.Sprintf("%d", season),
					RoundNumber:      round,
					RoundPick:        int64(pick + 1),
					OverallPick:      overall,
					DraftType:        "Draft",
					TeamID:           team.TeamID,
					TeamCity:         team.City,
					TeamName:         team.Nickname,
					TeamAbbreviation: team.Abbreviation,
					Organization:     pickOne(g.rnd, []string{"Duke", "Kentucky", "Kansas", "UCLA", "Real Madrid", "G League Ignite"}),
					OrganizationType: "College/University",
				})
			}
		}
	}
	return dataset, nil
}

// game dates the first half of a season in November of the start year and
// the rest in February of the next year.
func (g *Generator) game(season, sequence int, home, away league.TeamDetailsRow) league.GameRow {
	date := fmt.Sprintf("%d-11-%02d 00:00:00", season, 1+sequence%28)
	if sequence%2 == 0 {
		date = fmt.Sprintf("%d-02-%02d 00:00:00", season+1, 1+sequence%28)
	}

	homeBox := g.boxScore()
	awayBox := g.boxScore()
	wlHome, wlAway := "W", "L"
	if awayBox.pts > homeBox.pts {
		wlHome, wlAway = "L", "W"
	}

	return league.GameRow{
		SeasonID:             fmt.Sprintf("2%d", season),
		TeamIDHome:           home.TeamID,
		TeamAbbreviationHome: home.Abbreviation,
		TeamNameHome:         home.City + " " + home.Nickname,
		GameID:               fmt.Sprintf("002%02d%05d", season%100, sequence),
		GameDate:             date,
		MatchupHome:          home.Abbreviation + " vs. " + away.Abbreviation,
		WLHome:               wlHome,
		FGMHome:              homeBox.fgm,
		FGAHome:              homeBox.fga,
		FGPctHome:            ratio(homeBox.fgm, homeBox.fga),
		FG3MHome:             homeBox.fg3m,
		FG3AHome:             homeBox.fg3a,
		FG3PctHome:           ratio(homeBox.fg3m, homeBox.fg3a),
		FTMHome:              homeBox.ftm,
		FTAHome:              homeBox.fta,
		FTPctHome:            ratio(homeBox.ftm, homeBox.fta),
		OREBHome:             homeBox.oreb,
		DREBHome:             homeBox.dreb,
		REBHome:              homeBox.oreb + homeBox.dreb,
		ASTHome:              homeBox.ast,
		STLHome:              homeBox.stl,
		BLKHome:              homeBox.blk,
		TOVHome:              homeBox.tov,
		PFHome:               homeBox.pf,
		PTSHome:              homeBox.pts,
		PlusMinusHome:        homeBox.pts - awayBox.pts,
		TeamIDAway:           away.TeamID,
		TeamAbbreviationAway: away.Abbreviation,
		TeamNameAway:         away.City + " " + away.Nickname,
		MatchupAway:          away.Abbreviation + " @ " + home.Abbreviation,
		WLAway:               wlAway,
		FGMAway:              awayBox.fgm,
		FGAAway:              awayBox.fga,
		FGPctAway:            ratio(awayBox.fgm, awayBox.fga),
		FG3MAway:             awayBox.fg3m,
		FG3AAway:             awayBox.fg3a,
		FG3PctAway:           ratio(awayBox.fg3m, awayBox.fg3a),
		FTMAway:              awayBox.ftm,
		FTAAway:              awayBox.fta,
		FTPctAway:            ratio(awayBox.ftm, awayBox.fta),
		OREBAway:             awayBox.oreb,
		DREBAway:             awayBox.dreb,
		REBAway:              awayBox.oreb + awayBox.dreb,
		ASTAway:              awayBox.ast,
		STLAway:              awayBox.stl,
		BLKAway:              awayBox.blk,
		TOVAway:              awayBox.tov,
		PFAway:               awayBox.pf,
		PTSAway:              awayBox.pts,
		PlusMinusAway:        awayBox.pts - homeBox.pts,
		SeasonType:           "Regular Season",
	}
}

func (g *Generator) otherStats(gameID string) league.OtherStatsRow {
	return league.OtherStatsRow{
		GameID:           gameID,
		LeagueID:         "00",
		PtsPaintHome:     int64(30 + g.rnd.Intn(30)),
		Pts2ndChanceHome: int64(5 + g.rnd.Intn(15)),
		PtsFastBreakHome: int64(4 + g.rnd.Intn(20)),
		LargestLeadHome:  int64(g.rnd.Intn(25)),
		PtsPaintAway:     int64(30 + g.rnd.Intn(30)),
		Pts2ndChanceAway: int64(5 + g.rnd.Intn(15)),
		PtsFastBreakAway: int64(4 + g.rnd.Intn(20)),
		LargestLeadAway:  int64(g.rnd.Intn(25)),
		LeadChanges:      int64(g.rnd.Intn(20)),
		TimesTied:        int64(g.rnd.Intn(15)),
	}
}

type boxScore struct {
	fgm, fga, fg3m, fg3a, ftm, fta float64
	oreb, dreb, ast, stl, blk      float64
	tov, pf, pts                   float64
}

func (g *Generator) boxScore() boxScore {
	fga := float64(78 + g.rnd.Intn(16))
	fgm := math.Round(fga * (0.40 + g.rnd.Float64()*0.12))
	fg3a := float64(22 + g.rnd.Intn(20))
	fg3m := math.Round(fg3a * (0.30 + g.rnd.Float64()*0.12))
	if fg3m > fgm {
		fg3m = fgm
	}
	fta := float64(14 + g.rnd.Intn(16))
	ftm := math.Round(fta * (0.70 + g.rnd.Float64()*0.15))
	return boxScore{
		fgm: fgm, fga: fga, fg3m: fg3m, fg3a: fg3a, ftm: ftm, fta: fta,
		oreb: float64(6 + g.rnd.Intn(10)),
		dreb: float64(30 + g.rnd.Intn(12)),
		ast:  float64(18 + g.rnd.Intn(14)),
		stl:  float64(4 + g.rnd.Intn(8)),
		blk:  float64(2 + g.rnd.Intn(7)),
		tov:  float64(8 + g.rnd.Intn(10)),
		pf:   float64(15 + g.rnd.Intn(10)),
		pts:  2*(fgm-fg3m) + 3*fg3m + ftm,
	}
}

func ratio(made, attempted float64) float64 {
	if attempted == 0 {
		return 0
	}
	return math.Round(made/attempted*1000) / 1000
}

func pickOne(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}
