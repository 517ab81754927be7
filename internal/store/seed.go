package store

import "github.com/fortuna/atalanta/internal/scrape"

// DefaultSchools is the built-in school list used when the database is empty
// or no DSN is configured. Roster URLs follow each site's standard layout.
var DefaultSchools = []scrape.SchoolConfig{
	{
		Name:        "Georgia Tech",
		Domain:      "ramblinwreck.com",
		RosterURL:   "https://ramblinwreck.com/sports/baseball/roster/",
		ScheduleURL: "https://ramblinwreck.com/sports/baseball/schedule/",
		Platform:    "sidearm",
		Sport:       "baseball",
	},
	{
		Name:        "North Carolina",
		Domain:      "goheels.com",
		RosterURL:   "https://goheels.com/sports/baseball/roster",
		ScheduleURL: "https://goheels.com/sports/baseball/schedule",
		Platform:    "sidearm",
		Sport:       "baseball",
	},
	{
		Name:        "Oklahoma",
		Domain:      "soonersports.com",
		RosterURL:   "https://soonersports.com/sports/softball/roster",
		ScheduleURL: "https://soonersports.com/sports/softball/schedule",
		Platform:    "sidearm",
		Sport:       "softball",
	},
	{
		Name:        "Belmont Abbey",
		Domain:      "abbeyathletics.com",
		RosterURL:   "https://abbeyathletics.com/sports/baseball/roster",
		ScheduleURL: "https://abbeyathletics.com/sports/baseball/schedule",
		Platform:    "presto",
		Sport:       "baseball",
	},
}
