package analysis

import (
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
)

const maxPatternEvidence = 3

// DetectTaskPatterns runs the task-level detection rules over a user's tasks.
// Rules with a zero denominator are skipped.
func DetectTaskPatterns(tasks []task.Task, now time.Time) []DetectedPattern {
	patterns := []DetectedPattern{}

	var (
		completedWithDue int
		lateTitles       []string
		skipped          int
		overduePending   int
		pending          int
		pendingNoDue     int
	)

	for _, t := range tasks {
		switch t.Status {
		case task.TaskStatusCompleted:
			if t.DueDate != nil {
				completedWithDue++
				if t.CompletedAt != nil && t.CompletedAt.After(*t.DueDate) {
					lateTitles = append(lateTitles, t.Title)
				}
			}
		case task.TaskStatusSkipped:
			skipped++
		default:
			pending++
			if t.DueDate == nil {
				pendingNoDue++
			} else if t.DueDate.Before(now) {
				overduePending++
			}
		}
	}

	if completedWithDue > 0 {
		lateRate := float64(len(lateTitles)) / float64(completedWithDue)
		if lateRate > 0.5 {
			patterns = append(patterns, DetectedPattern{
				Type:        pattern.PatternProcrastination,
				Description: "Most tasks with deadlines get finished after the deadline has passed",
				Confidence:  clamp01(lateRate),
				Evidence:    lateTitles[:min(len(lateTitles), maxPatternEvidence)],
			})
		}
	}

	if len(tasks) > 0 {
		skipRate := float64(skipped) / float64(len(tasks))
		if skipRate > 0.2 {
			patterns = append(patterns, DetectedPattern{
				Type:        pattern.PatternTaskSkipping,
				Description: fmt.Sprintf("Skipped %d of %d tasks instead of completing or rescheduling them", skipped, len(tasks)),
				Confidence:  clamp01(skipRate * 2),
			})
		}
	}

	if overduePending >= 5 {
		patterns = append(patterns, DetectedPattern{
			Type:        pattern.PatternOvercommitment,
			Description: fmt.Sprintf("%d overdue tasks are piling up, more is being planned than can get done", overduePending),
			Confidence:  clamp01(float64(overduePending) / 10),
		})
	}

	if pending > 0 {
		vagueRate := float64(pendingNoDue) / float64(pending)
		if vagueRate > 0.5 {
			patterns = append(patterns, DetectedPattern{
				Type:        pattern.PatternVaguePlanning,
				Description: "Most open tasks have no due date, making them easy to ignore indefinitely",
				Confidence:  clamp01(vagueRate),
			})
		}
	}

	return patterns
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
