package platform

// Profile carries the selector set and expected table vocabulary for one
// vendor template family. Profiles are registry-owned and immutable.
type Profile struct {
	ID string

	// Roster page selectors
	RosterCard   string
	RosterName   string
	RosterNumber string
	RosterLink   string

	// Player page selectors
	StatsTab     string
	SeasonSelect string
	GameLogTable string

	// Headers a game-log table is expected to carry
	GameLogHeaders []string
}

// profiles is the closed set of known vendor templates. A single
// parameterized extraction algorithm consumes these; unknown or failed
// profiles fall through to the generic one.
var profiles = map[string]Profile{
	"sidearm": {
		ID:             "sidearm",
		RosterCard:     "li.sidearm-roster-player, div.sidearm-roster-player",
		RosterName:     ".sidearm-roster-player-name a, .sidearm-roster-player-name",
		RosterNumber:   ".sidearm-roster-player-jersey-number",
		RosterLink:     ".sidearm-roster-player-name a, a[href*='/roster/']",
		StatsTab:       "a[href*='stats'], #sidearm-roster-player-stats-tab",
		SeasonSelect:   "select[id*='season'], select[aria-label*='Season']",
		GameLogTable:   "table.sidearm-table",
		GameLogHeaders: []string{"Date", "Opponent"},
	},
	"presto": {
		ID:             "presto",
		RosterCard:     "tr.roster-row, div.roster-card, li.roster-item",
		RosterName:     ".name a, td.name, .player-name",
		RosterNumber:   ".number, td.no, .jersey",
		RosterLink:     "a[href*='/roster/'], a[href*='/players/']",
		StatsTab:       "a[href*='stats']",
		SeasonSelect:   "select[name*='season'], select[id*='season']",
		GameLogTable:   "table.stats-table, table.gamelog",
		GameLogHeaders: []string{"Date", "Opponent"},
	},
	"genius": {
		ID:           "genius",
		RosterCard:   "div.roster-player, tr.roster-row",
		RosterName:   ".player-name, td.name",
		RosterNumber: ".player-number, td.number",
		RosterLink:   "a[href*='/roster/'], a[href*='/player/']",
		StatsTab:     "a[href*='stats']",
		GameLogTable: "table.game-log",
	},
	"statbroadcast": {
		ID:           "statbroadcast",
		RosterCard:   "tr.player-row",
		RosterName:   "td.name",
		RosterNumber: "td.uni",
		RosterLink:   "a[href*='player']",
		GameLogTable: "table.stats",
	},
	"ncaa": {
		ID:           "ncaa",
		RosterCard:   "tr",
		RosterName:   "td.name a, td.name",
		RosterNumber: "td.number",
		RosterLink:   "a[href*='/player']",
		GameLogTable: "table.mytable",
	},
	"stretch": {
		ID:           "stretch",
		RosterCard:   "div.player-card, tr.player",
		RosterName:   ".player-name",
		RosterNumber: ".player-number",
		RosterLink:   "a[href*='player']",
		GameLogTable: "table",
	},
	"wmt": {
		ID:           "wmt",
		RosterCard:   "div.roster-card, li.roster-item",
		RosterName:   ".roster-card-name, .name",
		RosterNumber: ".roster-card-number, .number",
		RosterLink:   "a[href*='/roster/']",
		GameLogTable: "table",
	},
	"revel": {
		ID:           "revel",
		RosterCard:   "div.player-tile",
		RosterName:   ".player-tile-name",
		RosterNumber: ".player-tile-number",
		RosterLink:   "a[href*='/roster/']",
		GameLogTable: "table",
	},
	"generic": {
		ID:           "generic",
		RosterCard:   "li, div, tr",
		RosterName:   "a[href*='/roster/'], a[href*='/player']",
		RosterNumber: "[class*='number'], [class*='jersey']",
		RosterLink:   "a[href*='/roster/'], a[href*='/player']",
		StatsTab:     "a[href*='stats']",
		GameLogTable: "table",
	},
}

// Lookup returns the profile for a platform id, defaulting to generic.
func Lookup(id string) Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles["generic"]
}
