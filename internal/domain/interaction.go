package domain

// CommandKind is the closed set of actions a comment can request.
type CommandKind int

const (
	CommandUnrecognized CommandKind = iota
	CommandPet
	CommandFeed
)

func (k CommandKind) String() string {
	switch k {
	case CommandPet:
		return "pet"
	case CommandFeed:
		return "feed"
	default:
		return "unrecognized"
	}
}

// InteractionType returns the interaction type for a recognized command.
func (k CommandKind) InteractionType() InteractionType {
	if k == CommandFeed {
		return InteractionFeed
	}
	return InteractionPet
}

// InteractionOutcome describes how an interaction was handled.
type InteractionOutcome int

const (
	OutcomeAccepted InteractionOutcome = iota
	OutcomeRateLimited
	OutcomeUnrecognized
)

func (o InteractionOutcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "unrecognized"
	}
}

// InteractionResult is returned to the caller of ProcessInteraction.
type InteractionResult struct {
	Outcome   InteractionOutcome
	Kind      CommandKind
	Bonus     int
	Remaining int
}
