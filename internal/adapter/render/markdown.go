// Package render turns a mood view into the Markdown region embedded in the
// profile README. The region is delimited by HTML-comment markers so the
// rest of the document survives every update.
package render

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/spf13/afero"
)

const (
	MarkerStart = "<!-- mood-poodle:start -->"
	MarkerEnd   = "<!-- mood-poodle:end -->"

	filePerm = os.FileMode(0644)
)

// Presentation is the per-mood display lookup. It lives here, not in the
// core types: the engine classifies, the renderer decorates.
type Presentation struct {
	Emoji string
	Asset string
}

var presentations = map[domain.Mood]Presentation{
	domain.MoodSad:      {Emoji: "😢", Asset: "assets/poodle-sad.png"},
	domain.MoodBored:    {Emoji: "🥱", Asset: "assets/poodle-bored.png"},
	domain.MoodContent:  {Emoji: "🙂", Asset: "assets/poodle-content.png"},
	domain.MoodHappy:    {Emoji: "😄", Asset: "assets/poodle-happy.png"},
	domain.MoodEcstatic: {Emoji: "🤩", Asset: "assets/poodle-ecstatic.png"},
}

// Lookup returns the presentation for a mood, defaulting to content.
func Lookup(mood domain.Mood) Presentation {
	if p, ok := presentations[mood]; ok {
		return p
	}
	return presentations[domain.MoodContent]
}

// Section renders the replaceable Markdown region for a view.
func Section(view domain.MoodView) string {
	p := Lookup(view.Mood)

	var b strings.Builder
	fmt.Fprintf(&b, "### The Mood Poodle is %s %s\n\n", view.Mood, p.Emoji)
	fmt.Fprintf(&b, "<img src=\"%s\" alt=\"a %s poodle\" width=\"220\" />\n\n", p.Asset, view.Mood)
	fmt.Fprintf(&b, "**Mood:** %d/100\n\n", view.Score)
	fmt.Fprintf(&b, "The poodle %s.\n\n", view.Reason)
	fmt.Fprintf(&b, "🫳 pets: %d · 🦴 treats: %d · last updated %s\n",
		view.TotalPets, view.TotalFeeds, view.UpdatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	return b.String()
}

// ReadmeSink writes the rendered region into the README between the markers.
type ReadmeSink struct {
	fs   afero.Fs
	path string
}

func NewReadmeSink(fs afero.Fs, path string) *ReadmeSink {
	return &ReadmeSink{fs: fs, path: path}
}

// UpdateMoodSection replaces the marked region with a fresh render. The file
// and both markers must already exist; the sink never restructures the
// surrounding document.
func (s *ReadmeSink) UpdateMoodSection(_ context.Context, view domain.MoodView) error {
	content, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("read display file: %w", err)
	}

	updated, err := ReplaceRegion(string(content), Section(view))
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, []byte(updated), filePerm); err != nil {
		return fmt.Errorf("write display file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("rename display file: %w", err)
	}
	return nil
}

// ReplaceRegion swaps the text between the markers for the given section.
func ReplaceRegion(document, section string) (string, error) {
	start := strings.Index(document, MarkerStart)
	end := strings.Index(document, MarkerEnd)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("display markers %s/%s not found", MarkerStart, MarkerEnd)
	}

	var b strings.Builder
	b.WriteString(document[:start+len(MarkerStart)])
	b.WriteString("\n")
	b.WriteString(section)
	b.WriteString(document[end:])
	return b.String(), nil
}
