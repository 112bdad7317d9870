// Package qualify decides whether a cast qualifies its author for
// leaderboard inclusion and extracts the author-supplied description.
package qualify

import (
	"regexp"
	"strings"
)

const (
	// DefaultKeyphrase is the exact phrase a qualifying cast must contain,
	// followed by the author's free-text description.
	DefaultKeyphrase = "started aiming higher and it worked out!"

	// DefaultChannelID is the channel a qualifying cast must be posted in.
	// A keyphrase match outside the channel is a weaker, display-only signal.
	DefaultChannelID = "higher"

	// maxDescriptionRunes caps the extracted description length
	maxDescriptionRunes = 120

	truncationMarker = "..."
)

// Matcher matches cast text against a required keyphrase
type Matcher struct {
	re        *regexp.Regexp
	channelID string
}

// New creates a matcher for the given keyphrase and channel. Empty arguments
// fall back to the defaults.
func New(keyphrase, channelID string) *Matcher {
	if keyphrase == "" {
		keyphrase = DefaultKeyphrase
	}
	if channelID == "" {
		channelID = DefaultChannelID
	}
	return &Matcher{
		re:        regexp.MustCompile(`(?is)` + regexp.QuoteMeta(keyphrase) + `\s*(.*)`),
		channelID: channelID,
	}
}

// Match reports whether the text contains the keyphrase followed by a
// non-empty description, and returns that description trimmed and truncated
// to 120 runes with an ellipsis marker when cut.
func (m *Matcher) Match(text string) (string, bool) {
	groups := m.re.FindStringSubmatch(text)
	if groups == nil {
		return "", false
	}

	description := strings.TrimSpace(groups[1])
	if description == "" {
		return "", false
	}

	if runes := []rune(description); len(runes) > maxDescriptionRunes {
		description = string(runes[:maxDescriptionRunes]) + truncationMarker
	}

	return description, true
}

// InChannel reports whether a cast's channel satisfies the community
// requirement for full qualification.
func (m *Matcher) InChannel(channelID string) bool {
	return channelID == m.channelID
}
