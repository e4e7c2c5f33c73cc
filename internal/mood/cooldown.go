package mood

import (
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
)

// cooldownStackBonus is added to the eventual landing score per interaction
// during the override window.
const cooldownStackBonus = 5

// TriggerCooldown records an accepted interaction against the ecstatic
// override. The first interaction captures the last committed score as the
// landing baseline; later interactions stack the bonus and refresh the
// trigger time without recapturing. The mood is forced to ecstatic either way.
func TriggerCooldown(doc *domain.Document, now time.Time) {
	if !doc.Cooldown.Active {
		pre := doc.Mood.Score
		triggered := now
		doc.Cooldown = domain.CooldownState{
			Active:              true,
			PreInteractionScore: &pre,
			StackedBonus:        cooldownStackBonus,
			TriggeredAt:         &triggered,
		}
	} else {
		doc.Cooldown.StackedBonus += cooldownStackBonus
		triggered := now
		doc.Cooldown.TriggeredAt = &triggered
	}

	doc.Mood.Score = 100
	doc.Mood.State = domain.MoodEcstatic
	doc.Mood.LastCalculated = now
}

// ResolveCooldown lands the mood at the captured baseline plus the stacked
// bonus and clears the override. Returns false, leaving the document
// untouched, when no cooldown is active.
func ResolveCooldown(doc *domain.Document, now time.Time) bool {
	if !doc.Cooldown.Active {
		return false
	}

	pre := 0
	if doc.Cooldown.PreInteractionScore != nil {
		pre = *doc.Cooldown.PreInteractionScore
	}

	score := Clamp(pre+doc.Cooldown.StackedBonus, 0, 100)
	doc.Mood.Score = score
	doc.Mood.State = Classify(score)
	doc.Mood.LastCalculated = now
	doc.Cooldown = domain.CooldownState{}
	return true
}

// CooldownDue reports whether an active cooldown has outlived the window
// since its last trigger.
func CooldownDue(doc *domain.Document, window time.Duration, now time.Time) bool {
	if !doc.Cooldown.Active || doc.Cooldown.TriggeredAt == nil {
		return false
	}
	return now.Sub(*doc.Cooldown.TriggeredAt) >= window
}
