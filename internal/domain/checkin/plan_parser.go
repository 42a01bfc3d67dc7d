package checkin

import (
	"regexp"
	"strings"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/coach"
)

// planLine matches "09:00 - 10:30 write report" and "09:00 write report".
var planLine = regexp.MustCompile(`^(\d{1,2}:\d{2})(?:\s*[-–]\s*(\d{1,2}:\d{2}))?\s+(.+)$`)

// bulletPrefix strips leading list markers such as "-", "*", "3." or "3)".
var bulletPrefix = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

// parsePlanText is the local, model-free plan parser. One task per non-empty
// line; a leading time or time range becomes the task's start and end.
func parsePlanText(text string) []coach.ParsedTask {
	var tasks []coach.ParsedTask

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}

		t := coach.ParsedTask{Title: line}
		if m := planLine.FindStringSubmatch(line); m != nil {
			t.StartTime = normalizeClock(m[1])
			t.EndTime = normalizeClock(m[2])
			t.Title = strings.TrimSpace(m[3])
		}
		if t.Title == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// normalizeClock pads single-digit hours so "9:00" becomes "09:00".
func normalizeClock(v string) string {
	if v == "" {
		return ""
	}
	if len(v) == 4 {
		return "0" + v
	}
	return v
}

// dueFromTimes resolves a parsed end (or start) time against today's date.
func dueFromTimes(p coach.ParsedTask, now time.Time) *time.Time {
	clock := p.EndTime
	if clock == "" {
		clock = p.StartTime
	}
	if clock == "" {
		return nil
	}

	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return nil
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	return &due
}
