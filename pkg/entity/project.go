package entity

import "time"

// Project groups tasks under a shared name and color.
type Project struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"notblank"`
	Color       string    `json:"color" validate:"hexcolor"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectDraft carries the caller supplied fields of a new project.
type ProjectDraft struct {
	Name        string
	Color       string
	Description string
}

// NewProject builds a project from a draft. An empty color takes the
// palette default.
func NewProject(d ProjectDraft, now time.Time) Project {
	p := Project{
		ID:          NewID(KindProject),
		Name:        trim(d.Name),
		Color:       trim(d.Color),
		Description: d.Description,
		CreatedAt:   stamp(now),
	}
	if p.Color == "" {
		p.Color = DefaultColor
	}
	return p
}

// ProjectPatch names only the project fields being changed.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into p and returns the result.
func (pp ProjectPatch) Apply(p Project) Project {
	if pp.Name != nil {
		p.Name = trim(*pp.Name)
	}
	if pp.Color != nil {
		p.Color = trim(*pp.Color)
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	return p
}
