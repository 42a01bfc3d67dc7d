package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskList_Valid(t *testing.T) {
	raw := `{"tasks":[
		{"title":"Write report","startTime":"09:00","endTime":"10:30","estimatedDuration":90,"priority":"high"},
		{"title":"Review PRs"}
	]}`

	tasks, err := ParseTaskList(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "09:00", tasks[0].StartTime)
}

func TestParseTaskList_MalformedJSON(t *testing.T) {
	_, err := ParseTaskList("sorry, I can't do that")
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestParseTaskList_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"tasks\":[{\"title\":\"a\"}]}\n```"

	tasks, err := ParseTaskList(raw)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestParseTaskList_DropsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing title", `{"tasks":[{"description":"no title"}]}`},
		{"blank title", `{"tasks":[{"title":"   "}]}`},
		{"bad start time", `{"tasks":[{"title":"a","startTime":"25:00"}]}`},
		{"bad end time", `{"tasks":[{"title":"a","endTime":"9:00"}]}`},
		{"negative duration", `{"tasks":[{"title":"a","estimatedDuration":-5}]}`},
		{"unknown priority", `{"tasks":[{"title":"a","priority":"urgent"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := ParseTaskList(tt.raw)
			require.NoError(t, err)
			assert.Empty(t, tasks, "invalid entry must be dropped, not repaired")
		})
	}
}

func TestParseTaskList_KeepsValidDropsInvalid(t *testing.T) {
	raw := `{"tasks":[
		{"title":"good","startTime":"23:59"},
		{"title":"bad","startTime":"24:00"}
	]}`

	tasks, err := ParseTaskList(raw)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "good", tasks[0].Title)
}

func desc(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestParsePatternList_Valid(t *testing.T) {
	raw := `{"patterns":[{"type":"procrastination","description":"` + desc(60) + `","confidence":0.8,"shouldSave":true}]}`

	patterns, err := ParsePatternList(raw)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, pattern.PatternProcrastination, patterns[0].Type)
}

func TestParsePatternList_DropsContractViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown type", `{"patterns":[{"type":"laziness","description":"` + desc(60) + `","confidence":0.8,"shouldSave":true}]}`},
		{"description too short", `{"patterns":[{"type":"procrastination","description":"` + desc(49) + `","confidence":0.8,"shouldSave":true}]}`},
		{"description too long", `{"patterns":[{"type":"procrastination","description":"` + desc(101) + `","confidence":0.8,"shouldSave":true}]}`},
		{"confidence too low", `{"patterns":[{"type":"procrastination","description":"` + desc(60) + `","confidence":0.4,"shouldSave":true}]}`},
		{"confidence too high", `{"patterns":[{"type":"procrastination","description":"` + desc(60) + `","confidence":1.1,"shouldSave":true}]}`},
		{"shouldSave false", `{"patterns":[{"type":"procrastination","description":"` + desc(60) + `","confidence":0.8,"shouldSave":false}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns, err := ParsePatternList(tt.raw)
			require.NoError(t, err)
			assert.Empty(t, patterns)
		})
	}
}

func TestParsePatternList_BoundaryValues(t *testing.T) {
	// 50-char description and 0.5 confidence sit exactly on the limits.
	raw := `{"patterns":[{"type":"goal_abandonment","description":"` + desc(50) + `","confidence":0.5,"shouldSave":true}]}`

	patterns, err := ParsePatternList(raw)
	require.NoError(t, err)
	assert.Len(t, patterns, 1)
}

func TestParseRoastResponse_DropsOutOfRangeScores(t *testing.T) {
	raw := `{"weekSummary":"rough week","alignmentScore":1.5,"honestyScore":0.9,"completionScore":-0.1,"patterns":[]}`

	resp, err := parseRoastResponse(raw)
	require.NoError(t, err)
	assert.Nil(t, resp.AlignmentScore)
	assert.Nil(t, resp.CompletionScore)
	require.NotNil(t, resp.HonestyScore)
	assert.Equal(t, 0.9, *resp.HonestyScore)
}

type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.content}},
		},
	}, nil
}

func TestRefineTasks_FallsBackOnModelFailure(t *testing.T) {
	local := []ParsedTask{{Title: "local plan item"}}
	svc := NewService(&stubCompleter{err: errors.New("timeout")}, ClientConfig{}, nil, nil, nil, nil, nil, nil)

	got := svc.RefineTasks(context.Background(), "plan text", local)
	assert.Equal(t, local, got, "fallback list must be returned verbatim")
}

func TestRefineTasks_FallsBackOnUnparsableResponse(t *testing.T) {
	local := []ParsedTask{{Title: "local plan item"}}
	svc := NewService(&stubCompleter{content: "I could not parse that"}, ClientConfig{}, nil, nil, nil, nil, nil, nil)

	got := svc.RefineTasks(context.Background(), "plan text", local)
	assert.Equal(t, local, got)
}

func TestRefineTasks_UsesModelOutputWhenValid(t *testing.T) {
	local := []ParsedTask{{Title: "local"}}
	svc := NewService(&stubCompleter{content: `{"tasks":[{"title":"refined","startTime":"08:00"}]}`}, ClientConfig{}, nil, nil, nil, nil, nil, nil)

	got := svc.RefineTasks(context.Background(), "plan text", local)
	require.Len(t, got, 1)
	assert.Equal(t, "refined", got[0].Title)
}
