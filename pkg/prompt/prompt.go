// Package prompt fills command flags interactively.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/planner/pkg/entity"
)

// ErrNoProjects is returned by Project when there is nothing to choose.
var ErrNoProjects = errors.New("prompt: no projects")

// Prompter asks on In and draws on Out.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// For reads and writes through the command's streams.
func For(cmd *cobra.Command) *Prompter {
	return &Prompter{
		In:  io.NopCloser(cmd.InOrStdin()),
		Out: nopCloser{cmd.OutOrStdout()},
	}
}

// Flags asks for each named flag the user did not set on the command line.
// Answers go through the flag's own Set, so typed flags validate as usual.
func (p *Prompter) Flags(fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("prompt: unknown flag %q", name)
		}
		if f.Changed {
			continue
		}
		answer, err := p.text(f)
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		if f.Value.Type() == "bool" {
			b, _ := ParseBool(answer)
			answer = strconv.FormatBool(b)
		}
		if err := fs.Set(name, answer); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prompter) text(f *pflag.Flag) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	prompt := promptui.Prompt{
		Label:     label(f),
		Default:   f.Value.String(),
		Templates: templates,
		Validate:  validator(f),
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Project asks the user to pick a project and returns its id.
func (p *Prompter) Project(projects []entity.Project) (string, error) {
	if len(projects) == 0 {
		return "", ErrNoProjects
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .ID | faint }}",
		Inactive: "   {{ .Name }} {{ .ID | faint }}",
		Selected: "{{ .Name | bold }}",
	}
	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(projects[index].Name), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Project",
		Items:     projects,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return projects[i].ID, nil
}

func label(f *pflag.Flag) string {
	if f.Usage == "" {
		return f.Name
	}
	return fmt.Sprintf("%s (%s)", f.Name, strings.TrimSuffix(f.Usage, "."))
}

// validator checks answers against the flag's type. Empty keeps the current
// value.
func validator(f *pflag.Flag) promptui.ValidateFunc {
	return func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			return nil
		}
		switch f.Value.Type() {
		case "int":
			_, err := strconv.Atoi(input)
			return err
		case "bool":
			_, err := ParseBool(input)
			return err
		case "level":
			_, err := entity.ParseLevel(input)
			return err
		}
		return nil
	}
}

// ParseBool is strconv.ParseBool plus yes and no.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "1", "t", "true", "y", "yes":
		return true, nil
	case "0", "f", "false", "n", "no":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
