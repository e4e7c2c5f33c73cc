package domain

import "time"

// Mood is the discrete mood label shown on the profile.
type Mood string

const (
	MoodSad      Mood = "sad"
	MoodBored    Mood = "bored"
	MoodContent  Mood = "content"
	MoodHappy    Mood = "happy"
	MoodEcstatic Mood = "ecstatic"
)

// InteractionType is the kind of interaction a visitor performed.
type InteractionType string

const (
	InteractionPet  InteractionType = "pet"
	InteractionFeed InteractionType = "feed"
)

// InteractionLogCap bounds the interaction history; the oldest entries are
// evicted first once the cap is reached.
const InteractionLogCap = 100

// MoodState is the displayed mood. State is always the classification of
// Score, except while a cooldown forces the ecstatic override.
type MoodState struct {
	Score          int       `json:"score"`
	State          Mood      `json:"state"`
	LastCalculated time.Time `json:"lastCalculated"`
}

// DecayState tracks the interaction bonus and when decay last ran.
// The bonus only increases via interactions and only decreases via the
// scheduled decay, floored at zero.
type DecayState struct {
	InteractionBonus int       `json:"interactionBonus"`
	LastDecayApplied time.Time `json:"lastDecayApplied"`
}

// ContributionStats is the cached summary of the account's contribution
// activity. It is replaced wholesale on each scheduled refresh and is stale
// in between.
type ContributionStats struct {
	LastContributionDate *time.Time `json:"lastContributionDate"`
	Count7Days           int        `json:"count7Days"`
	Count30Days          int        `json:"count30Days"`
	RepoCount            int        `json:"repoCount"`
	LastFetched          time.Time  `json:"lastFetched"`
}

// InteractionEntry is one pet/feed event in the history.
type InteractionEntry struct {
	Username    string          `json:"username"`
	Type        InteractionType `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	IssueNumber int             `json:"issueNumber"`
}

// InteractionLog is the capped history plus monotonic per-type totals.
type InteractionLog struct {
	Entries    []InteractionEntry `json:"entries"`
	TotalPets  int                `json:"totalPets"`
	TotalFeeds int                `json:"totalFeeds"`
}

// Record appends an entry (evicting FIFO past the cap) and bumps the
// matching total counter. Totals are never decremented.
func (l *InteractionLog) Record(e InteractionEntry) {
	l.Entries = append(l.Entries, e)
	if overflow := len(l.Entries) - InteractionLogCap; overflow > 0 {
		l.Entries = append(l.Entries[:0], l.Entries[overflow:]...)
	}
	switch e.Type {
	case InteractionPet:
		l.TotalPets++
	case InteractionFeed:
		l.TotalFeeds++
	}
}

// RateLimitTable maps a username to its recent interaction timestamps.
// Entries older than the window are pruned when the table is written.
type RateLimitTable map[string][]time.Time

// CooldownState exists only while a triggered ecstatic override has not yet
// been resolved. Active=false implies the other fields are nil/zero.
type CooldownState struct {
	Active              bool       `json:"active"`
	PreInteractionScore *int       `json:"preInteractionScore"`
	StackedBonus        int        `json:"stackedBonus"`
	TriggeredAt         *time.Time `json:"triggeredAt"`
}

// Document is the single persisted aggregate. All components mutate an
// in-memory copy and the whole document is committed atomically; Version is
// the optimistic-concurrency token bumped on every save.
type Document struct {
	Version       int               `json:"version"`
	Mood          MoodState         `json:"mood"`
	Decay         DecayState        `json:"decay"`
	Contributions ContributionStats `json:"contributions"`
	Interactions  InteractionLog    `json:"interactions"`
	RateLimits    RateLimitTable    `json:"rateLimits"`
	Cooldown      CooldownState     `json:"cooldown"`
}

// NewDocument returns a seed document: neutral content mood, empty history.
func NewDocument(now time.Time) *Document {
	return &Document{
		Mood: MoodState{
			Score:          50,
			State:          MoodContent,
			LastCalculated: now,
		},
		Decay:      DecayState{LastDecayApplied: now},
		RateLimits: make(RateLimitTable),
	}
}
