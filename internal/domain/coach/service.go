package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/analysis"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/notification"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/Pycomet/grindproof-sub001/internal/domain/score"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// maxToolRounds caps how many times one chat turn may loop through tool calls.
const maxToolRounds = 5

var ErrCoachUnavailable = errors.New("coach unavailable")

// RoastReport is the outcome of a weekly roast run.
type RoastReport struct {
	Score    *score.AccountabilityScore `json:"score"`
	Patterns []ValidatedPattern         `json:"patterns"`
	Summary  string                     `json:"summary"`
}

type Service interface {
	Chat(ctx context.Context, userID uuid.UUID, message string) (string, error)
	RefineTasks(ctx context.Context, planText string, localTasks []ParsedTask) []ParsedTask
	AnalyzePatterns(ctx context.Context, userID uuid.UUID) ([]ValidatedPattern, error)
	GenerateWeeklyRoast(ctx context.Context, userID uuid.UUID) (*RoastReport, error)
}

type service struct {
	llm           ChatCompleter
	cfg           ClientConfig
	analysis      analysis.Service
	tasks         task.Service
	goals         goal.Service
	scores        score.Service
	patterns      pattern.Service
	notifications notification.Service
	logger        *logrus.Logger
}

func NewService(
	llm ChatCompleter,
	cfg ClientConfig,
	analysisSvc analysis.Service,
	taskSvc task.Service,
	goalSvc goal.Service,
	scoreSvc score.Service,
	patternSvc pattern.Service,
	notificationSvc notification.Service,
) Service {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	return &service{
		llm:           llm,
		cfg:           cfg,
		analysis:      analysisSvc,
		tasks:         taskSvc,
		goals:         goalSvc,
		scores:        scoreSvc,
		patterns:      patternSvc,
		notifications: notificationSvc,
		logger:        logger,
	}
}

func (s *service) complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (*openai.ChatCompletionResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	}
	if len(tools) > 0 {
		req.Tools = tools
	}

	resp, err := s.llm.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCoachUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrCoachUnavailable
	}
	return &resp, nil
}

// Chat runs one conversational turn, executing any tool calls the model makes
// and feeding the results back until it produces a plain answer.
func (s *service) Chat(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: message},
	}
	tools := coachTools()

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.complete(ctx, messages, tools)
		if err != nil {
			return "", err
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			result := s.executeToolCall(ctx, userID, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	return "", fmt.Errorf("%w: tool loop did not settle", ErrCoachUnavailable)
}

// executeToolCall dispatches one model tool call against the domain services.
// Failures are reported back to the model as text rather than aborting the turn.
func (s *service) executeToolCall(ctx context.Context, userID uuid.UUID, call openai.ToolCall) string {
	s.logger.WithFields(logrus.Fields{
		"user_id": userID.String(),
		"tool":    call.Function.Name,
	}).Info("Executing coach tool call")

	result, err := s.dispatchTool(ctx, userID, call.Function.Name, []byte(call.Function.Arguments))
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	data, err := json.Marshal(result)
	if err != nil {
		return `{"error":"failed to encode tool result"}`
	}
	return string(data)
}

func (s *service) dispatchTool(ctx context.Context, userID uuid.UUID, name string, args []byte) (interface{}, error) {
	switch name {
	case fnCreateTask:
		var in struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			DueDate     string   `json:"due_date"`
			Tags        []string `json:"tags"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrUnparsableResponse
		}
		input := task.CreateTaskInput{
			UserID:      userID,
			Title:       in.Title,
			Description: in.Description,
			Tags:        in.Tags,
		}
		if due, err := time.Parse(time.RFC3339, in.DueDate); err == nil {
			input.DueDate = &due
		}
		return s.tasks.CreateTask(ctx, input)

	case fnUpdateTask:
		var in struct {
			TaskID      string  `json:"task_id"`
			Title       *string `json:"title"`
			Description *string `json:"description"`
			DueDate     string  `json:"due_date"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrUnparsableResponse
		}
		id, err := uuid.Parse(in.TaskID)
		if err != nil {
			return nil, task.ErrInvalidInput
		}
		input := task.UpdateTaskInput{Title: in.Title, Description: in.Description}
		if due, err := time.Parse(time.RFC3339, in.DueDate); err == nil {
			input.DueDate = &due
		}
		return s.tasks.UpdateTask(ctx, id, input)

	case fnDeleteTask:
		var in struct {
			TaskID string `json:"task_id"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrUnparsableResponse
		}
		id, err := uuid.Parse(in.TaskID)
		if err != nil {
			return nil, task.ErrInvalidInput
		}
		if err := s.tasks.DeleteTask(ctx, id); err != nil {
			return nil, err
		}
		return map[string]bool{"deleted": true}, nil

	case fnSearchTasks:
		var in struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrUnparsableResponse
		}
		return s.tasks.SearchTasks(ctx, userID, in.Query)

	case fnSearchGoals:
		var in struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrUnparsableResponse
		}
		return s.goals.SearchGoals(ctx, userID, in.Query)

	case fnGenerateWeeklyRoast:
		return s.GenerateWeeklyRoast(ctx, userID)

	case fnAnalyzePatterns:
		return s.AnalyzePatterns(ctx, userID)

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// RefineTasks asks the model to restructure a free-form plan. On any failure
// it returns the locally parsed list untouched, so a dead model never blocks
// a morning plan.
func (s *service) RefineTasks(ctx context.Context, planText string, localTasks []ParsedTask) []ParsedTask {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: taskParsingSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: planText},
	}

	resp, err := s.complete(ctx, messages, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Task refinement failed, using local parse")
		return localTasks
	}

	parsed, err := ParseTaskList(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.WithError(err).Warn("Task refinement unparsable, using local parse")
		return localTasks
	}
	if len(parsed) == 0 {
		return localTasks
	}
	return parsed
}

// AnalyzePatterns runs the local analysis, asks the model to interpret it,
// and records every validated pattern.
func (s *service) AnalyzePatterns(ctx context.Context, userID uuid.UUID) ([]ValidatedPattern, error) {
	snapshot, err := s.analysis.AnalyzeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: patternAnalysisSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: string(stats)},
	}

	resp, err := s.complete(ctx, messages, nil)
	if err != nil {
		return nil, err
	}

	validated, err := ParsePatternList(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	for _, p := range validated {
		if _, err := s.patterns.RecordOccurrence(ctx, pattern.RecordOccurrenceInput{
			UserID:      userID,
			PatternType: p.Type,
			Description: p.Description,
			Confidence:  p.Confidence,
		}); err != nil {
			s.logger.WithError(err).WithField("pattern", string(p.Type)).Error("Failed to record pattern")
		}
	}

	return validated, nil
}

// GenerateWeeklyRoast produces this week's roast: local analysis, model
// commentary, score upsert, pattern occurrences, and a ready notification.
func (s *service) GenerateWeeklyRoast(ctx context.Context, userID uuid.UUID) (*RoastReport, error) {
	snapshot, err := s.analysis.AnalyzeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: weeklyRoastSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: string(stats)},
	}

	resp, err := s.complete(ctx, messages, nil)
	if err != nil {
		return nil, err
	}

	roast, err := parseRoastResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	weekStart := analysis.WeekStart(time.Now())
	sc, err := s.upsertWeeklyScore(ctx, userID, weekStart, snapshot, roast)
	if err != nil {
		return nil, err
	}

	for _, p := range roast.Patterns {
		if _, err := s.patterns.RecordOccurrence(ctx, pattern.RecordOccurrenceInput{
			UserID:      userID,
			PatternType: p.Type,
			Description: p.Description,
			Confidence:  p.Confidence,
		}); err != nil {
			s.logger.WithError(err).WithField("pattern", string(p.Type)).Error("Failed to record pattern")
		}
	}

	if _, err := s.notifications.Notify(ctx, notification.CreateNotificationInput{
		UserID: userID,
		Type:   notification.TypeRoastReady,
		Title:  "Your weekly roast is ready",
		Body:   roast.WeekSummary,
	}); err != nil {
		s.logger.WithError(err).Error("Failed to create roast notification")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID.String(),
		"patterns": len(roast.Patterns),
	}).Info("Weekly roast generated")

	return &RoastReport{Score: sc, Patterns: roast.Patterns, Summary: roast.WeekSummary}, nil
}

func (s *service) upsertWeeklyScore(ctx context.Context, userID uuid.UUID, weekStart time.Time, snapshot *analysis.UserAnalysis, roast *roastResponse) (*score.AccountabilityScore, error) {
	summary := roast.WeekSummary
	input := score.CreateScoreInput{
		UserID:             userID,
		WeekStart:          weekStart,
		AlignmentScore:     roast.AlignmentScore,
		HonestyScore:       roast.HonestyScore,
		CompletionScore:    roast.CompletionScore,
		NewProjectsStarted: snapshot.GoalStats.CreatedThisWeek,
		EvidenceSubmitted:  snapshot.Evidence.ThisWeek,
		Insights:           roast.Insights,
		Recommendations:    roast.Recommendations,
	}
	if summary != "" {
		input.WeekSummary = &summary
	}

	sc, err := s.scores.CreateScore(ctx, input)
	if err == nil {
		return sc, nil
	}
	if !errors.Is(err, score.ErrScoreExists) {
		return nil, err
	}

	existing, err := s.scores.GetScoreByWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	update := score.UpdateScoreInput{
		AlignmentScore:     roast.AlignmentScore,
		HonestyScore:       roast.HonestyScore,
		CompletionScore:    roast.CompletionScore,
		NewProjectsStarted: &snapshot.GoalStats.CreatedThisWeek,
		EvidenceSubmitted:  &snapshot.Evidence.ThisWeek,
		Insights:           roast.Insights,
		Recommendations:    roast.Recommendations,
	}
	if summary != "" {
		update.WeekSummary = &summary
	}
	return s.scores.UpdateScore(ctx, existing.ID, update)
}
