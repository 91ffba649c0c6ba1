package reporting

import (
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"

	"gridbook/pkg/openf1"
)

// FilterByTeam keeps the drivers whose team name matches the wildcard
// pattern, case-insensitively. "Red*" matches Red Bull Racing. An empty
// pattern keeps everything; drivers with no team never match a non-empty
// pattern.
func FilterByTeam(drivers []openf1.Driver, pattern string) []openf1.Driver {
	if pattern == "" {
		return drivers
	}
	p := strings.ToLower(pattern)

	kept := make([]openf1.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.TeamName == nil {
			continue
		}
		if wildcard.Match(p, strings.ToLower(*d.TeamName)) {
			kept = append(kept, d)
		}
	}
	return kept
}
