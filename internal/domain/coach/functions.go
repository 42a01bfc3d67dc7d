package coach

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Tool names the model can call during a chat turn.
const (
	fnCreateTask          = "create_task"
	fnUpdateTask          = "update_task"
	fnDeleteTask          = "delete_task"
	fnSearchTasks         = "search_tasks"
	fnSearchGoals         = "search_goals"
	fnGenerateWeeklyRoast = "generate_weekly_roast"
	fnAnalyzePatterns     = "analyze_patterns"
)

// coachTools declares every function the coach exposes to the model.
func coachTools() []openai.Tool {
	defs := []openai.FunctionDefinition{
		{
			Name:        fnCreateTask,
			Description: "Create a new task for the user",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title":       {Type: jsonschema.String, Description: "Short task title"},
					"description": {Type: jsonschema.String, Description: "Optional details"},
					"due_date":    {Type: jsonschema.String, Description: "Optional due date, RFC 3339"},
					"tags": {
						Type:  jsonschema.Array,
						Items: &jsonschema.Definition{Type: jsonschema.String},
					},
				},
				Required: []string{"title"},
			},
		},
		{
			Name:        fnUpdateTask,
			Description: "Update an existing task's title, description or due date",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"task_id":     {Type: jsonschema.String, Description: "Task id (UUID)"},
					"title":       {Type: jsonschema.String},
					"description": {Type: jsonschema.String},
					"due_date":    {Type: jsonschema.String, Description: "RFC 3339"},
				},
				Required: []string{"task_id"},
			},
		},
		{
			Name:        fnDeleteTask,
			Description: "Delete a task",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"task_id": {Type: jsonschema.String, Description: "Task id (UUID)"},
				},
				Required: []string{"task_id"},
			},
		},
		{
			Name:        fnSearchTasks,
			Description: "Search the user's tasks by title",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"query": {Type: jsonschema.String},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        fnSearchGoals,
			Description: "Search the user's goals by title",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"query": {Type: jsonschema.String},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        fnGenerateWeeklyRoast,
			Description: "Generate this week's accountability roast report",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: map[string]jsonschema.Definition{},
			},
		},
		{
			Name:        fnAnalyzePatterns,
			Description: "Analyze the user's behavioral patterns from their task and goal history",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: map[string]jsonschema.Definition{},
			},
		},
	}

	tools := make([]openai.Tool, len(defs))
	for i := range defs {
		tools[i] = openai.Tool{Type: openai.ToolTypeFunction, Function: &defs[i]}
	}
	return tools
}
