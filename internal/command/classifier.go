// Package command classifies freeform comment text into the closed set of
// poodle actions. The phrase sets are configuration, not code: they can be
// replaced wholesale from a YAML file.
package command

import (
	"fmt"
	"strings"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// PhraseSet holds the trigger phrases per action. Matching is
// case-insensitive substring; the pet set is checked first.
type PhraseSet struct {
	Pet  []string `yaml:"pet"`
	Feed []string `yaml:"feed"`
}

// DefaultPhrases returns the built-in trigger phrases.
func DefaultPhrases() PhraseSet {
	return PhraseSet{
		Pet:  []string{"!pet", "pet the poodle", "poodle pet"},
		Feed: []string{"!feed", "feed the poodle", "poodle feed", "!treat", "treat"},
	}
}

// LoadPhrases reads a phrase-set override from a YAML file. Empty sets fall
// back to the defaults so a partial file cannot disable an action entirely.
func LoadPhrases(fs afero.Fs, path string) (PhraseSet, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return PhraseSet{}, fmt.Errorf("read phrase file: %w", err)
	}

	var set PhraseSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return PhraseSet{}, fmt.Errorf("parse phrase file: %w", err)
	}

	defaults := DefaultPhrases()
	if len(set.Pet) == 0 {
		set.Pet = defaults.Pet
	}
	if len(set.Feed) == 0 {
		set.Feed = defaults.Feed
	}
	return set, nil
}

// Classify returns the action requested by the text, or
// CommandUnrecognized when no phrase matches.
func Classify(text string, phrases PhraseSet) domain.CommandKind {
	lowered := strings.ToLower(text)

	if matchesAny(lowered, phrases.Pet) {
		return domain.CommandPet
	}
	if matchesAny(lowered, phrases.Feed) {
		return domain.CommandFeed
	}
	return domain.CommandUnrecognized
}

func matchesAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
