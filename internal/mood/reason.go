package mood

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
)

const reasonSeparator = " and "

// Reason composes the display explanation for the current mood: a
// contribution-recency clause, plus an attention clause when the interaction
// bonus is positive. Display only, never parsed back.
func Reason(stats domain.ContributionStats, interactionBonus int, now time.Time) string {
	clauses := []string{recencyClause(stats, now)}

	switch {
	case interactionBonus > 5:
		clauses = append(clauses, "feels loved from all the recent attention")
	case interactionBonus > 0:
		clauses = append(clauses, "appreciates the recent attention")
	}

	return strings.Join(clauses, reasonSeparator)
}

// CelebrationReason is the fixed message shown while the ecstatic override
// is active, credited to the visitor who triggered it.
func CelebrationReason(username string) string {
	return fmt.Sprintf("is absolutely thrilled that @%s stopped by", username)
}

func recencyClause(stats domain.ContributionStats, now time.Time) string {
	if stats.LastContributionDate == nil {
		return "is still waiting for the first contribution"
	}

	days := daysSince(*stats.LastContributionDate, now)
	switch {
	case days == 0:
		return "saw some coding today"
	case days == 1:
		return "saw some coding yesterday"
	case days <= 3:
		return "saw some commits a couple of days ago"
	case days <= 7:
		return "misses the commits from earlier this week"
	default:
		return fmt.Sprintf("hasn't seen a contribution in %d days", days)
	}
}
