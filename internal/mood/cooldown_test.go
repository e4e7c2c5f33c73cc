package mood

import (
	"testing"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithScore(score int) *domain.Document {
	doc := domain.NewDocument(testNow)
	doc.Mood.Score = score
	doc.Mood.State = Classify(score)
	return doc
}

func TestTriggerCooldownFirstInteraction(t *testing.T) {
	doc := docWithScore(65)

	TriggerCooldown(doc, testNow)

	require.True(t, doc.Cooldown.Active)
	require.NotNil(t, doc.Cooldown.PreInteractionScore)
	assert.Equal(t, 65, *doc.Cooldown.PreInteractionScore)
	assert.Equal(t, 5, doc.Cooldown.StackedBonus)
	require.NotNil(t, doc.Cooldown.TriggeredAt)
	assert.Equal(t, testNow, *doc.Cooldown.TriggeredAt)

	assert.Equal(t, 100, doc.Mood.Score)
	assert.Equal(t, domain.MoodEcstatic, doc.Mood.State)
}

func TestTriggerCooldownStacksWithoutRecapture(t *testing.T) {
	doc := docWithScore(65)
	TriggerCooldown(doc, testNow)

	later := testNow.Add(2 * time.Minute)
	TriggerCooldown(doc, later)

	assert.Equal(t, 65, *doc.Cooldown.PreInteractionScore, "baseline captured once")
	assert.Equal(t, 10, doc.Cooldown.StackedBonus)
	assert.Equal(t, later, *doc.Cooldown.TriggeredAt, "countdown restarts on each stack")
	assert.Equal(t, 100, doc.Mood.Score)
}

func TestResolveCooldownLandsAtStackedScore(t *testing.T) {
	doc := docWithScore(65)
	TriggerCooldown(doc, testNow)
	TriggerCooldown(doc, testNow.Add(2*time.Minute))

	resolveTime := testNow.Add(12 * time.Minute)
	resolved := ResolveCooldown(doc, resolveTime)

	require.True(t, resolved)
	assert.Equal(t, 75, doc.Mood.Score)
	assert.Equal(t, domain.MoodHappy, doc.Mood.State)
	assert.Equal(t, resolveTime, doc.Mood.LastCalculated)

	assert.False(t, doc.Cooldown.Active)
	assert.Nil(t, doc.Cooldown.PreInteractionScore)
	assert.Zero(t, doc.Cooldown.StackedBonus)
	assert.Nil(t, doc.Cooldown.TriggeredAt)
}

func TestResolveCooldownClampsLanding(t *testing.T) {
	doc := docWithScore(98)
	TriggerCooldown(doc, testNow)

	require.True(t, ResolveCooldown(doc, testNow.Add(time.Minute)))
	assert.Equal(t, 100, doc.Mood.Score)
	assert.Equal(t, domain.MoodEcstatic, doc.Mood.State)
}

func TestResolveCooldownInactiveIsNoOp(t *testing.T) {
	doc := docWithScore(42)
	before := *doc

	resolved := ResolveCooldown(doc, testNow.Add(time.Hour))

	assert.False(t, resolved)
	assert.Equal(t, before, *doc, "document semantically untouched")
}

func TestCooldownDue(t *testing.T) {
	doc := docWithScore(50)
	window := 10 * time.Minute

	assert.False(t, CooldownDue(doc, window, testNow), "inactive cooldown never due")

	TriggerCooldown(doc, testNow)
	assert.False(t, CooldownDue(doc, window, testNow.Add(5*time.Minute)))
	assert.True(t, CooldownDue(doc, window, testNow.Add(10*time.Minute)))

	// A fresh stack restarts the countdown.
	TriggerCooldown(doc, testNow.Add(9*time.Minute))
	assert.False(t, CooldownDue(doc, window, testNow.Add(12*time.Minute)))
}
