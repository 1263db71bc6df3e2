package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerCompleteTaskTool(srv, svc)
	registerRescheduleTaskTool(srv, svc)
	registerUnscheduleTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerAddProjectTool(srv, svc)
	registerListProjectsTool(srv, svc)
	registerToggleHabitTool(srv, svc)
	registerHabitProgressTool(srv, svc)
	registerCalendarViewTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a task. Without a project the first project is used."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes, markdown allowed."),
		),
		mcp.WithString("projectId",
			mcp.Description("Project that owns the task."),
		),
		mcp.WithString("priority",
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("urgency",
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithNumber("estimatedMinutes",
			mcp.Description("Expected effort in minutes; defaults to 30."),
		),
		mcp.WithString("date",
			mcp.Description("Scheduled date as YYYY-MM-DD."),
		),
		mcp.WithString("time",
			mcp.Description("Scheduled time as HH:MM; needs a date."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name             string `json:"name"`
			Notes            string `json:"notes"`
			ProjectID        string `json:"projectId"`
			Priority         string `json:"priority"`
			Urgency          string `json:"urgency"`
			EstimatedMinutes int    `json:"estimatedMinutes"`
			Date             string `json:"date"`
			Time             string `json:"time"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		task, err := svc.AddTask(ctx, AddTaskOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by schedule or project."),
		mcp.WithString("filter",
			mcp.Enum("all", "today", "week", "month", "no-date", "overdue"),
		),
		mcp.WithString("projectId",
			mcp.Description("Only tasks of this project."),
		),
		mcp.WithBoolean("includeCompleted",
			mcp.Description("Include completed tasks."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.ListTasks(
			request.GetString("filter", ""),
			request.GetString("projectId", ""),
			request.GetBool("includeCompleted", false),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := svc.CompleteTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerRescheduleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reschedule_task",
		mcp.WithDescription("Move a task to another date, keeping its time unless one is given."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Target date as YYYY-MM-DD."),
		),
		mcp.WithString("time",
			mcp.Description("Target time as HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := svc.RescheduleTask(ctx, id, date, request.GetString("time", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerUnscheduleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"unschedule_task",
		mcp.WithDescription("Clear a task's date and time, returning it to the unscheduled list."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := svc.App.UnscheduleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.App.DeleteTask(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerAddProjectTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_project",
		mcp.WithDescription("Create a project."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color such as #6366f1."),
		),
		mcp.WithString("description"),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		project, err := svc.AddProject(ctx, name, request.GetString("color", ""), request.GetString("description", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(project)
	})
}

func registerListProjectsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_projects",
		mcp.WithDescription("List projects with task counts and completion."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := svc.App.ProjectStats()
		return toJSONResult(map[string]any{
			"projects": stats,
			"count":    len(stats),
		})
	})
}

func registerToggleHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_habit",
		mcp.WithDescription("Flip a habit's completion for one day of its month."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD; defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		habit, err := svc.ToggleHabit(ctx, id, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(habit)
	})
}

func registerHabitProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"habit_progress",
		mcp.WithDescription("Daily, weekly and overall habit completion for a month."),
		mcp.WithString("month",
			mcp.Description("Month as YYYY-MM; defaults to the current month."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.HabitProgress(request.GetString("month", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func registerCalendarViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar_view",
		mcp.WithDescription("Day, week, month or year view of scheduled tasks."),
		mcp.WithString("view",
			mcp.Enum("day", "week", "month", "year"),
		),
		mcp.WithString("on",
			mcp.Description("Any date inside the period, YYYY-MM-DD; defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := svc.CalendarView(request.GetString("view", ""), request.GetString("on", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
