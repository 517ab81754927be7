package gamelog

import "strings"

// headerSynonyms maps the header vocabulary seen across platforms to
// canonical stat keys. Field identity comes from headers, never from column
// position; sites disagree on both order and wording.
var headerSynonyms = map[string]string{
	"date": "date",
	"dt":   "date",

	"opponent": "opponent",
	"opp":      "opponent",
	"vs":       "opponent",

	"result": "result",
	"score":  "result",
	"w/l":    "result",
	"w_l":    "result",

	"ab":      "ab",
	"at-bats": "ab",
	"at_bats": "ab",

	"h":    "h",
	"hits": "h",

	"r":    "r",
	"runs": "r",

	"rbi":   "rbi",
	"rbi's": "rbi",

	"bb":    "bb",
	"walks": "bb",

	"k":          "k",
	"so":         "k",
	"strikeouts": "k",

	"tb":          "tb",
	"total bases": "tb",
	"total_bases": "tb",

	"ip":      "ip",
	"innings": "ip",

	"er":          "er",
	"earned runs": "er",
	"earned_runs": "er",

	"player": "player",
	"name":   "player",

	"#":      "number",
	"no":     "number",
	"num":    "number",
	"jersey": "number",
}

// HeaderKey canonicalizes a raw header cell: known synonyms collapse to their
// canonical key, everything else keeps its lowercase/underscore form.
func HeaderKey(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "/", "_")

	if key, ok := headerSynonyms[normalized]; ok {
		return key
	}

	normalized = strings.ReplaceAll(normalized, " ", "_")
	if key, ok := headerSynonyms[normalized]; ok {
		return key
	}
	return normalized
}
