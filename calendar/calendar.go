// Package calendar turns tasks into calendar events: an iCalendar
// payload plus a pre-filled Google Calendar link, with optional
// direct event insertion through the Calendar API.
package calendar

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

var (
	hoursRegex   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:h(?:ours?|rs?)?)\b`)
	minutesRegex = regexp.MustCompile(`(\d+)\s*(?:m(?:in(?:ute)?s?)?)\b`)
)

// ParseDuration interprets a free-text time estimate like
// "30 minutes", "2 hours", "1.5h" or "1 hour 15 min". Anything it
// cannot read becomes the 90-minute default.
func ParseDuration(estimate string) time.Duration {
	s := strings.ToLower(strings.TrimSpace(estimate))
	if s == "" {
		return time.Duration(config.DefaultEventMinutes) * time.Minute
	}

	var total time.Duration
	if m := hoursRegex.FindStringSubmatch(s); len(m) > 1 {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += time.Duration(h * float64(time.Hour))
		}
	}
	if m := minutesRegex.FindStringSubmatch(s); len(m) > 1 {
		if min, err := strconv.Atoi(m[1]); err == nil {
			total += time.Duration(min) * time.Minute
		}
	}
	if total <= 0 {
		return time.Duration(config.DefaultEventMinutes) * time.Minute
	}
	return total
}

// EventWindow computes the event start and end for a task. A task
// with a due date starts there (09:00 when no time is given); without
// one the event lands tomorrow at 09:00 UTC.
func EventWindow(t types.Task, now time.Time) (time.Time, time.Time) {
	start := now.UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(9 * time.Hour)
	if t.DueDate != "" {
		if day, err := time.Parse("2006-01-02", t.DueDate); err == nil {
			start = day.Add(9 * time.Hour)
			if t.DueTime != "" {
				if tod, err := time.Parse("15:04", t.DueTime); err == nil {
					start = day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
				}
			}
		}
	}
	return start, start.Add(ParseDuration(t.EstimatedTime))
}

// BuildEventDescription renders the task body for the event:
// description first, subtasks enumerated, tags listed, then
// priority, category and estimate appended.
func BuildEventDescription(t types.Task) string {
	var b strings.Builder
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	if len(t.Subtasks) > 0 {
		b.WriteString("\nSubtasks:\n")
		for i, st := range t.Subtasks {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, st))
		}
	}
	if len(t.Tags) > 0 {
		b.WriteString("\nTags: " + strings.Join(t.Tags, ", ") + "\n")
	}
	b.WriteString("\n")
	if t.Priority != "" {
		b.WriteString("Priority: " + string(t.Priority) + "\n")
	}
	if t.Category != "" {
		b.WriteString("Category: " + t.Category + "\n")
	}
	if t.EstimatedTime != "" {
		b.WriteString("Estimated time: " + t.EstimatedTime + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const utcBasicFormat = "20060102T150405Z"

// BuildICal produces a single-event iCalendar payload with UTC
// basic-format timestamps.
func BuildICal(t types.Task, start, end time.Time) string {
	uid := t.ID
	if uid == "" {
		uid = uuid.NewString()
	}
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//taskpilot//EN",
		"BEGIN:VEVENT",
		"UID:" + uid + "@taskpilot",
		"DTSTAMP:" + time.Now().UTC().Format(utcBasicFormat),
		"DTSTART:" + start.UTC().Format(utcBasicFormat),
		"DTEND:" + end.UTC().Format(utcBasicFormat),
		"SUMMARY:" + escapeICalText(t.Title),
		"DESCRIPTION:" + escapeICalText(BuildEventDescription(t)),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func escapeICalText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// BuildGoogleCalendarURL builds the pre-filled event-creation link.
func BuildGoogleCalendarURL(t types.Task, start, end time.Time) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", t.Title)
	q.Set("dates", start.UTC().Format(utcBasicFormat)+"/"+end.UTC().Format(utcBasicFormat))
	q.Set("details", BuildEventDescription(t))
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
