package mood

import (
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
)

// AggregateCalendar reduces a raw contribution calendar to the summary stats
// the engine consumes. The 7- and 30-day windows include today plus the 6
// and 29 preceding days.
func AggregateCalendar(cal *domain.ContributionCalendar, now time.Time) domain.ContributionStats {
	stats := domain.ContributionStats{LastFetched: now}
	if cal == nil {
		return stats
	}
	stats.RepoCount = cal.RepoCount

	today := truncateToDay(now)
	cutoff7 := today.AddDate(0, 0, -6)
	cutoff30 := today.AddDate(0, 0, -29)

	var last time.Time
	for _, day := range cal.Days {
		if day.Count <= 0 {
			continue
		}
		date := truncateToDay(day.Date)
		if date.After(today) {
			continue
		}
		if date.After(last) {
			last = date
		}
		if !date.Before(cutoff7) {
			stats.Count7Days += day.Count
		}
		if !date.Before(cutoff30) {
			stats.Count30Days += day.Count
		}
	}

	if !last.IsZero() {
		stats.LastContributionDate = &last
	}
	return stats
}

// ZeroStats is the fallback snapshot used when the activity source fails.
func ZeroStats(now time.Time) domain.ContributionStats {
	return domain.ContributionStats{LastFetched: now}
}
