package analysis

import (
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
)

// CalculateTaskStats computes task statistics from a user's full task list.
func CalculateTaskStats(tasks []task.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}

	weekStart := WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	nextWeekEnd := weekEnd.AddDate(0, 0, 7)

	for _, t := range tasks {
		switch t.Status {
		case task.TaskStatusCompleted:
			stats.Completed++
			if t.DueDate != nil && t.CompletedAt != nil && t.CompletedAt.After(*t.DueDate) {
				stats.CompletedLate++
			}
		case task.TaskStatusSkipped:
			stats.Skipped++
		default:
			stats.Pending++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.Overdue++
			}
		}

		if t.DueDate != nil {
			due := *t.DueDate
			if !due.Before(weekStart) && due.Before(weekEnd) {
				stats.DueThisWeek++
			} else if !due.Before(weekEnd) && due.Before(nextWeekEnd) {
				stats.DueNextWeek++
			}
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}

// GoalCompletion returns the fraction of a goal's tasks that are completed.
// A goal with no tasks counts as zero progress.
func GoalCompletion(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == task.TaskStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks))
}

// CalculateGoalStats computes goal statistics from a user's goals and the
// tasks linked to each goal.
func CalculateGoalStats(goals []goal.Goal, tasksByGoal map[uuid.UUID][]task.Task, now time.Time) GoalStats {
	stats := GoalStats{
		Total:          len(goals),
		GoalCompletion: make(map[uuid.UUID]float64, len(goals)),
	}

	weekStart := WeekStart(now)

	for _, g := range goals {
		completion := GoalCompletion(tasksByGoal[g.ID])
		stats.GoalCompletion[g.ID] = completion

		switch g.Status {
		case goal.GoalStatusActive:
			stats.Active++
			if g.Priority == goal.GoalPriorityHigh {
				stats.HighPriorityActive++
			}
			if completion < 0.5 {
				stats.GoalsUnder50++
			}
		case goal.GoalStatusCompleted:
			stats.Completed++
		case goal.GoalStatusPaused:
			stats.Paused++
		}

		if !g.CreatedAt.Before(weekStart) {
			stats.CreatedThisWeek++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}

// BuildEvidenceStats aggregates evidence rows for a user's tasks.
func BuildEvidenceStats(items []evidence.Evidence, now time.Time) EvidenceStats {
	stats := EvidenceStats{
		Total:  len(items),
		ByType: make(map[evidence.EvidenceType]int),
	}

	weekStart := WeekStart(now)
	for _, e := range items {
		if !e.SubmittedAt.Before(weekStart) {
			stats.ThisWeek++
		}
		stats.ByType[e.Type]++
	}
	return stats
}
