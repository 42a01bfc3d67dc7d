package analysis

import (
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
)

const abandonmentWindow = 30 * 24 * time.Hour

// DetectGoalPatterns runs the goal-level detection rules over a user's goals
// and the tasks linked to each one.
func DetectGoalPatterns(goals []goal.Goal, tasksByGoal map[uuid.UUID][]task.Task, now time.Time) []DetectedPattern {
	patterns := []DetectedPattern{}

	var (
		active          int
		activeUnder50   int
		zeroTaskActive  int
		abandonedTitles []string
	)

	for _, g := range goals {
		if g.Status != goal.GoalStatusActive {
			continue
		}
		active++

		tasks := tasksByGoal[g.ID]
		if GoalCompletion(tasks) < 0.5 {
			activeUnder50++
		}
		if len(tasks) == 0 {
			zeroTaskActive++
		}
		if isAbandoned(tasks, now) {
			abandonedTitles = append(abandonedTitles, g.Title)
		}
	}

	if activeUnder50 >= 3 {
		patterns = append(patterns, DetectedPattern{
			Type:        pattern.PatternNewProjectAddiction,
			Description: fmt.Sprintf("%d active goals are each less than half done, new projects keep starting before old ones finish", activeUnder50),
			Confidence:  clamp01(float64(activeUnder50) / 5),
		})
	}

	if len(abandonedTitles) > 0 {
		patterns = append(patterns, DetectedPattern{
			Type:        pattern.PatternGoalAbandonment,
			Description: fmt.Sprintf("%d active goals have seen no task activity in the last 30 days", len(abandonedTitles)),
			Confidence:  clamp01(float64(len(abandonedTitles)) / 3),
			Evidence:    abandonedTitles[:min(len(abandonedTitles), maxPatternEvidence)],
		})
	}

	if active > 0 {
		zeroRate := float64(zeroTaskActive) / float64(active)
		if zeroRate > 0.3 {
			patterns = append(patterns, DetectedPattern{
				Type:        pattern.PatternPlanningWithoutExecution,
				Description: "A large share of active goals have no tasks attached at all",
				Confidence:  clamp01(zeroRate * 1.5),
			})
		}
	}

	return patterns
}

// isAbandoned reports whether a goal shows no recent task activity: either it
// has no tasks at all, or none of its tasks were touched inside the window.
func isAbandoned(tasks []task.Task, now time.Time) bool {
	if len(tasks) == 0 {
		return true
	}
	cutoff := now.Add(-abandonmentWindow)
	for _, t := range tasks {
		if t.UpdatedAt.After(cutoff) {
			return false
		}
	}
	return true
}
