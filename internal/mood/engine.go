// Package mood implements the mood engine: score computation, decay,
// classification and reason text. Everything here is pure; the caller
// supplies the current time.
package mood

import (
	"math"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
)

const (
	baseScore = 50

	// Penalty for an account with no contribution data at all.
	neverContributedPenalty = 30

	maxRecencyPenalty    = 40
	maxWeeklyBoost       = 20
	maxMonthlyBoost      = 15
	maxRepoBoost         = 10
	recencyPenaltyPerDay = 5
)

// threshold maps an inclusive score range to a mood label. The ranges are
// contiguous and cover the whole clamp domain [0,100].
type threshold struct {
	mood  domain.Mood
	lower int
	upper int
}

var thresholds = []threshold{
	{domain.MoodSad, 0, 20},
	{domain.MoodBored, 21, 40},
	{domain.MoodContent, 41, 60},
	{domain.MoodHappy, 61, 80},
	{domain.MoodEcstatic, 81, 100},
}

// ContributionScore computes the baseline mood component from contribution
// activity alone, independent of interactions. Intermediate arithmetic stays
// in floating point; truncation happens once at the end.
func ContributionScore(stats domain.ContributionStats, now time.Time) int {
	score := float64(baseScore)

	if stats.LastContributionDate != nil {
		days := daysSince(*stats.LastContributionDate, now)
		score -= math.Min(float64(days)*recencyPenaltyPerDay, maxRecencyPenalty)
	} else {
		score -= neverContributedPenalty
	}

	score += math.Min(float64(stats.Count7Days)*2, maxWeeklyBoost)
	score += math.Min(float64(stats.Count30Days)/5, maxMonthlyBoost)
	score += math.Min(float64(stats.RepoCount)/5, maxRepoBoost)

	return int(score)
}

// ApplyBonus shifts a baseline score by the interaction bonus and clamps the
// result to the score domain. The bonus is additive, never multiplicative.
func ApplyBonus(baseline, interactionBonus int) int {
	return Clamp(baseline+interactionBonus, 0, 100)
}

// Classify maps a score to its mood label. The fallback is unreachable for
// clamped input.
func Classify(score int) domain.Mood {
	for _, t := range thresholds {
		if score >= t.lower && score <= t.upper {
			return t.mood
		}
	}
	return domain.MoodContent
}

// DecayBonus applies one scheduled decay cycle to the interaction bonus,
// floored at zero. Must run exactly once per cycle.
func DecayBonus(currentBonus int) int {
	if currentBonus <= 0 {
		return 0
	}
	return currentBonus - 1
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// daysSince counts whole calendar days between a contribution date and now,
// both taken in UTC. A contribution earlier today yields zero.
func daysSince(date, now time.Time) int {
	d := truncateToDay(date)
	n := truncateToDay(now)
	if d.After(n) {
		return 0
	}
	return int(n.Sub(d) / (24 * time.Hour))
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
