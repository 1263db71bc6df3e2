package app

import (
	"context"
	"fmt"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
)

// Projects returns a copy of every project.
func (s *Service) Projects() []entity.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

// Project looks a project up by id.
func (s *Service) Project(id string) (entity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.projectIndex(id)
	if i < 0 {
		return entity.Project{}, fmt.Errorf("app: project %q: %w", id, ErrNotFound)
	}
	return s.projects[i], nil
}

func (s *Service) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// AddProject creates a project from draft.
func (s *Service) AddProject(ctx context.Context, d entity.ProjectDraft) (entity.Project, error) {
	p := entity.NewProject(d, s.now())
	if err := entity.Validate(p); err != nil {
		return entity.Project{}, fmt.Errorf("app: add project: %w", err)
	}
	s.mu.Lock()
	s.projects = append(cloneProjects(s.projects), p)
	return p, s.commit(ctx, store.KeyProjects)
}

// UpdateProject merges patch into the project with id.
func (s *Service) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (entity.Project, error) {
	s.mu.Lock()
	i := s.projectIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Project{}, fmt.Errorf("app: update project %q: %w", id, ErrNotFound)
	}
	next := patch.Apply(s.projects[i])
	if err := entity.Validate(next); err != nil {
		s.mu.Unlock()
		return entity.Project{}, fmt.Errorf("app: update project: %w", err)
	}
	projects := cloneProjects(s.projects)
	projects[i] = next
	s.projects = projects
	return next, s.commit(ctx, store.KeyProjects)
}

// DeleteProject removes the project and every task that belongs to it.
// It returns the number of tasks removed. Unknown ids are a no-op.
func (s *Service) DeleteProject(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	i := s.projectIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return 0, nil
	}
	tasks := make([]entity.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ProjectID != id {
			tasks = append(tasks, t)
		}
	}
	removed := len(s.tasks) - len(tasks)

	projects := make([]entity.Project, 0, len(s.projects)-1)
	projects = append(projects, s.projects[:i]...)
	projects = append(projects, s.projects[i+1:]...)

	s.tasks, s.projects = tasks, projects
	return removed, s.commit(ctx, store.KeyTasks, store.KeyProjects)
}

// TasksForProject lists the tasks that belong to a project.
func (s *Service) TasksForProject(id string) []entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == id {
			out = append(out, t)
		}
	}
	return out
}
