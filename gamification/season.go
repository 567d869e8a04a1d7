package gamification

import (
	"fmt"
	"time"
)

// Season is one August-to-July window. Start is inclusive, End exclusive.
type Season struct {
	Start time.Time
	End   time.Time
	Label string
}

// Seasons returns the window containing now and the one immediately before
// it. A season runs from August 1 to July 31, labelled "2024/25" style.
func Seasons(now time.Time) (current, previous Season) {
	startYear := now.Year()
	if now.Month() < time.August {
		startYear--
	}
	return seasonStarting(startYear, now.Location()), seasonStarting(startYear-1, now.Location())
}

func seasonStarting(year int, loc *time.Location) Season {
	return Season{
		Start: time.Date(year, time.August, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year+1, time.August, 1, 0, 0, 0, 0, loc),
		Label: fmt.Sprintf("%d/%02d", year, (year+1)%100),
	}
}
