package coach

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
)

var ErrUnparsableResponse = errors.New("unparsable model response")

// timeOfDay matches 24-hour HH:MM strings.
var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ParsedTask is one structured task from the task-parsing contract.
type ParsedTask struct {
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	StartTime         string `json:"startTime,omitempty"`
	EndTime           string `json:"endTime,omitempty"`
	EstimatedDuration int    `json:"estimatedDuration,omitempty"`
	Priority          string `json:"priority,omitempty"`
}

// ValidatedPattern is one entry from the weekly-pattern contract.
type ValidatedPattern struct {
	Type        pattern.PatternType `json:"type"`
	Description string              `json:"description"`
	Confidence  float64             `json:"confidence"`
	ShouldSave  bool                `json:"shouldSave"`
}

// stripFences removes a surrounding markdown code fence if the model added one.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validParsedTask enforces the task contract on a single entry.
func validParsedTask(t ParsedTask) bool {
	if strings.TrimSpace(t.Title) == "" {
		return false
	}
	if t.StartTime != "" && !timeOfDay.MatchString(t.StartTime) {
		return false
	}
	if t.EndTime != "" && !timeOfDay.MatchString(t.EndTime) {
		return false
	}
	if t.EstimatedDuration < 0 {
		return false
	}
	switch t.Priority {
	case "", "high", "medium", "low":
	default:
		return false
	}
	return true
}

// ParseTaskList decodes a task-parsing response. Entries violating the
// contract are dropped, never repaired. A response that is not the expected
// JSON shape at all fails with ErrUnparsableResponse.
func ParseTaskList(raw string) ([]ParsedTask, error) {
	var envelope struct {
		Tasks []ParsedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &envelope); err != nil {
		return nil, ErrUnparsableResponse
	}

	valid := make([]ParsedTask, 0, len(envelope.Tasks))
	for _, t := range envelope.Tasks {
		if validParsedTask(t) {
			valid = append(valid, t)
		}
	}
	return valid, nil
}

// validPattern enforces the weekly-pattern contract on a single entry.
func validPattern(p ValidatedPattern) bool {
	if !p.Type.IsValid() {
		return false
	}
	if n := len(p.Description); n < 50 || n > 100 {
		return false
	}
	if p.Confidence < 0.5 || p.Confidence > 1.0 {
		return false
	}
	return p.ShouldSave
}

// ParsePatternList decodes a pattern-analysis response, dropping entries that
// fail any contract constraint.
func ParsePatternList(raw string) ([]ValidatedPattern, error) {
	var envelope struct {
		Patterns []ValidatedPattern `json:"patterns"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &envelope); err != nil {
		return nil, ErrUnparsableResponse
	}

	valid := make([]ValidatedPattern, 0, len(envelope.Patterns))
	for _, p := range envelope.Patterns {
		if validPattern(p) {
			valid = append(valid, p)
		}
	}
	return valid, nil
}

// roastResponse is the decoded weekly roast body before validation.
type roastResponse struct {
	WeekSummary     string             `json:"weekSummary"`
	Insights        []string           `json:"insights"`
	Recommendations []string           `json:"recommendations"`
	AlignmentScore  *float64           `json:"alignmentScore"`
	HonestyScore    *float64           `json:"honestyScore"`
	CompletionScore *float64           `json:"completionScore"`
	Patterns        []ValidatedPattern `json:"patterns"`
}

// parseRoastResponse decodes a weekly roast reply. Out-of-range scores are
// discarded; patterns pass through the weekly-pattern contract.
func parseRoastResponse(raw string) (*roastResponse, error) {
	var resp roastResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return nil, ErrUnparsableResponse
	}

	resp.AlignmentScore = dropOutOfRange(resp.AlignmentScore)
	resp.HonestyScore = dropOutOfRange(resp.HonestyScore)
	resp.CompletionScore = dropOutOfRange(resp.CompletionScore)

	valid := make([]ValidatedPattern, 0, len(resp.Patterns))
	for _, p := range resp.Patterns {
		if validPattern(p) {
			valid = append(valid, p)
		}
	}
	resp.Patterns = valid
	return &resp, nil
}

func dropOutOfRange(v *float64) *float64 {
	if v == nil || *v < 0 || *v > 1 {
		return nil
	}
	return v
}
