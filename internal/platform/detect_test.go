package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		html     string
		expected string
	}{
		{"sidearm domain", "https://stats.sidearmsports.com/belmont", "", "sidearm"},
		{"sidearm domain beats html", "sidearmsports.com", "<html>prestosports</html>", "sidearm"},
		{"presto domain", "https://www.prestosports.com/school/roster", "", "presto"},
		{"statbroadcast domain", "https://www.statbroadcast.com/events/123", "", "statbroadcast"},
		{"white label with sidearm signature", "https://belmontbruins.com/roster", "<footer>Powered by Sidearm Sports</footer>", "sidearm"},
		{"white label with presto signature", "https://abbeyathletics.com", "<script src='prestosports.js'></script>", "presto"},
		{"sidearm path", "https://belmontbruins.com/sidearmstats/baseball", "", "sidearm"},
		{"unknown domain no signature", "belmontbruins.com", "", "generic"},
		{"unknown domain plain html", "https://belmontbruins.com", "<html><body>roster</body></html>", "generic"},
		{"empty input", "", "", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.url, tt.html); got != tt.expected {
				t.Errorf("Detect(%q, html) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestLookupUnknownFallsBackToGeneric(t *testing.T) {
	p := Lookup("does-not-exist")
	if p.ID != "generic" {
		t.Errorf("expected generic profile, got %q", p.ID)
	}

	for _, id := range []string{"sidearm", "presto", "genius", "statbroadcast", "ncaa", "stretch", "wmt", "revel"} {
		if Lookup(id).ID != id {
			t.Errorf("expected profile for %q to exist", id)
		}
	}
}
