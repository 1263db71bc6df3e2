package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const habitsURIPrefix = "planner://habits/"

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTasksResource(srv, svc)
	registerProjectsResource(srv, svc)
	registerHabitsTemplate(srv, svc)
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"planner://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task, completed or not."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks := svc.App.Tasks()
		payload := map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerProjectsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"planner://projects",
		"Projects",
		mcp.WithResourceDescription("Projects with task counts and completion."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		stats := svc.App.ProjectStats()
		payload := map[string]any{
			"projects": stats,
			"count":    len(stats),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerHabitsTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		habitsURIPrefix+"{month}",
		"Monthly Habits",
		mcp.WithTemplateDescription("Habits tracked in a month (YYYY-MM) and their progress."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month := templateArg(request, "month", habitsURIPrefix)
		if month == "" {
			return nil, fmt.Errorf("month is required")
		}

		summary, err := svc.HabitProgress(month)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"month":    summary.MonthKey,
			"habits":   svc.App.HabitsForMonth(summary.MonthKey),
			"progress": summary,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable. The server hands matched
// variables over as either a string or a []string; the URI suffix after
// prefix is the fallback.
func templateArg(request mcp.ReadResourceRequest, name, prefix string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, prefix)
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
