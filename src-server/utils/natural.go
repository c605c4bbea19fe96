package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"levelup/src-server/model"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	eventDateLayouts = []string{model.EventDateLayout, "2006-1-2"}
	eventTimeLayouts = []string{model.EventTimeLayout, "15:04", "3:04pm", "3:04 pm", "3pm", "3 pm"}

	// input shaped like a canonical value never falls through to the natural parser
	numericDate = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	numericTime = regexp.MustCompile(`^\d{1,2}:\d{1,2}(:\d{1,2})?$`)
)

// Parser that only knows about days: "tomorrow", "next friday", "march 3rd", "3/1/2024".
func NewDateParser() *when.Parser {
	parser := when.New(nil)
	parser.Add(
		en.Weekday(rules.Override),
		en.CasualDate(rules.Override),
		en.Deadline(rules.Override),
		en.PastTime(rules.Override),
		en.ExactMonthDate(rules.Override),
	)
	parser.Add(common.All...)
	return parser
}

// Parser that only knows about times of day: "7pm", "7:30 pm", "this evening".
func NewTimeParser() *when.Parser {
	parser := when.New(nil)
	parser.Add(
		en.CasualTime(rules.Override),
		en.Hour(rules.Override),
		en.HourMinute(rules.Override),
	)
	return parser
}

// The whole input must be understood, a phrase buried in other text is rejected.
func parseWhole(parser *when.Parser, input string, base time.Time) (time.Time, error) {
	result, err := parser.Parse(input, base)
	switch {
	case err != nil:
		return time.Time{}, err
	case result == nil:
		return time.Time{}, fmt.Errorf("can't understand %q", input)
	case result.Index != 0 || len(strings.TrimSpace(result.Text)) != len(input):
		return time.Time{}, fmt.Errorf("can't understand all of %q", input)
	}
	return result.Time, nil
}

// Normalize an event date to YYYY-MM-DD. Besides the canonical layout, natural
// phrases like "tomorrow" or "next saturday" are accepted, relative to now in loc.
func ParseEventDate(parser *when.Parser, loc *time.Location, input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("ParseEventDate: date is blank")
	}
	for _, layout := range eventDateLayouts {
		if date, err := time.ParseInLocation(layout, input, loc); err == nil {
			return date.Format(model.EventDateLayout), nil
		}
	}
	if numericDate.MatchString(input) {
		return "", fmt.Errorf("ParseEventDate: %q is not a calendar date", input)
	}

	date, err := parseWhole(parser, input, now.In(loc))
	if err != nil {
		return "", fmt.Errorf("ParseEventDate: %w", err)
	}
	return date.In(loc).Format(model.EventDateLayout), nil
}

// Normalize an event time to HH:MM:SS. Accepts "19:00", "19:00:00", "7pm" and
// phrases like "7:30 pm" or "this evening".
func ParseEventTime(parser *when.Parser, loc *time.Location, input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("ParseEventTime: time is blank")
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, strings.ToLower(input), loc); err == nil {
			return t.Format(model.EventTimeLayout), nil
		}
	}
	if numericTime.MatchString(input) {
		return "", fmt.Errorf("ParseEventTime: %q is not a time of day", input)
	}

	// rules set hours and minutes, seconds would leak from now
	t, err := parseWhole(parser, input, now.In(loc).Truncate(time.Minute))
	if err != nil {
		return "", fmt.Errorf("ParseEventTime: %w", err)
	}
	return t.In(loc).Format(model.EventTimeLayout), nil
}
