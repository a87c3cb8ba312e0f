// Package playedat parses the date a round was played from operator input
// such as "yesterday 2pm" or an RFC 3339 timestamp.
package playedat

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrInFuture is returned for a played date after now.
var ErrInFuture = errors.New("played date is in the future")

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// Parser turns free text into a played date.
type Parser struct {
	w *when.Parser
}

// NewParser creates a Parser with the English and common rule sets.
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// Parse resolves input relative to now in loc. An empty input is the zero
// time, which posting treats as the game start. The result is UTC.
func (p *Parser) Parse(input string, loc *time.Location, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return checkPast(t, now)
	}
	if t, err := time.ParseInLocation(time.DateOnly, input, loc); err == nil {
		return checkPast(t, now)
	}

	normalized := strings.ToLower(input)
	normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

	r, err := p.w.Parse(normalized, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse played date %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize played date %q", input)
	}
	return checkPast(r.Time.In(loc), now)
}

func checkPast(t, now time.Time) (time.Time, error) {
	if t.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInFuture, t.Format(time.RFC3339))
	}
	return t.UTC(), nil
}
