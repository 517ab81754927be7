package scrape

import "strings"

// SchoolConfig describes one school's athletics site. The table of schools is
// built once at startup and never mutated during a sync cycle.
type SchoolConfig struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	RosterURL   string `json:"roster_url"`
	ScheduleURL string `json:"schedule_url,omitempty"`
	Platform    string `json:"platform"` // platform id, or "auto" to detect
	Sport       string `json:"sport"`
}

// PlayerQuery identifies one player to scrape. Created per sync cycle from
// the external registry and discarded afterwards.
type PlayerQuery struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"jersey_number"`
	School string `json:"school"`
	Sport  string `json:"sport"`
	Season string `json:"season"`
}

// PlayerMatch is a resolved roster hit. It is only produced when both the
// name and the jersey number matched; name similarity alone never suffices.
type PlayerMatch struct {
	URL      string `json:"url"`
	Platform string `json:"platform_id"`
}

// GameRecord is one game's worth of stats keyed by lowercase/underscore
// header-derived names. It always carries "date", "opponent" and
// "home_away_neutral"; numeric stat cells are float64.
type GameRecord map[string]any

// ScheduleEntry is one row of a team schedule.
type ScheduleEntry struct {
	Date        string `json:"date"`
	Opponent    string `json:"opponent,omitempty"`
	BoxScoreURL string `json:"box_score_url,omitempty"`
}

// ScrapeResult is the outcome of one player query within a cycle.
type ScrapeResult struct {
	Query   PlayerQuery  `json:"query"`
	Games   []GameRecord `json:"games,omitempty"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
}

// CycleSummary aggregates one orchestrator cycle.
type CycleSummary struct {
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
	Total        int    `json:"total"`
	StartedAt    string `json:"started_at,omitempty"`
	FinishedAt   string `json:"finished_at,omitempty"`
}

// SchoolTable is the immutable, case-insensitive lookup of school configs.
type SchoolTable struct {
	byKey map[string]SchoolConfig
}

// NewSchoolTable builds a lookup keyed by school name + sport.
func NewSchoolTable(configs []SchoolConfig) *SchoolTable {
	t := &SchoolTable{byKey: make(map[string]SchoolConfig, len(configs))}
	for _, cfg := range configs {
		t.byKey[schoolKey(cfg.Name, cfg.Sport)] = cfg
	}
	return t
}

// Lookup finds a school by name and sport, case-insensitively.
func (t *SchoolTable) Lookup(name, sport string) (SchoolConfig, bool) {
	cfg, ok := t.byKey[schoolKey(name, sport)]
	return cfg, ok
}

// Len reports how many schools are configured.
func (t *SchoolTable) Len() int { return len(t.byKey) }

func schoolKey(name, sport string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(sport))
}
