package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/command"
	"github.com/Ba4bes/moodpoodle/internal/domain"
)

func thankYouMessage(username string, kind domain.CommandKind, remaining int) string {
	var reaction string
	switch kind {
	case domain.CommandFeed:
		reaction = "happily munches the treat and wags its tail"
	default:
		reaction = "leans into the pets and wags its tail"
	}

	return fmt.Sprintf(
		"Woof! The poodle %s. Thanks, @%s! 🐩\n\nYou have %d interactions left today.",
		reaction, username, remaining)
}

func rateLimitMessage(username string, window time.Duration) string {
	return fmt.Sprintf(
		"Easy there, @%s! The poodle needs a break. Try again once it has rested — the window resets over the next %s. 🐩💤",
		username, humanWindow(window))
}

// humanWindow renders a duration for display in messages: whole hours when
// the window is an exact hour multiple, minutes otherwise.
func humanWindow(d time.Duration) string {
	if h := int(d.Hours()); h >= 1 && d == time.Duration(h)*time.Hour {
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(d.Minutes())
	if m <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func helpMessage(username string, phrases command.PhraseSet) string {
	pet := "`" + strings.Join(phrases.Pet, "`, `") + "`"
	feed := "`" + strings.Join(phrases.Feed, "`, `") + "`"

	return fmt.Sprintf(
		"Hi @%s! I didn't catch that. To interact with the Mood Poodle, comment one of:\n\n"+
			"- to pet: %s\n- to feed: %s\n",
		username, pet, feed)
}
