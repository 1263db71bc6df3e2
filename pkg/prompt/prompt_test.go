package prompt

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/pflag"

	"tableflip.dev/planner/pkg/entity"
)

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    bool
		wantErr bool
	}{
		"yes":   {in: "yes", want: true},
		"Y":     {in: "Y", want: true},
		"true":  {in: "TRUE", want: true},
		"no":    {in: "No", want: false},
		"zero":  {in: "0", want: false},
		"maybe": {in: "maybe", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBool(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFlagsSkipsChanged(t *testing.T) {
	var (
		notes string
		level = entity.Medium
	)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&notes, "notes", "", "Notes.")
	fs.Var(&level, "priority", "Priority.")
	if err := fs.Parse([]string{"--notes=hi", "--priority=high"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Nothing should be read, so an empty input must not matter.
	p := &Prompter{In: io.NopCloser(&bytes.Buffer{}), Out: nopCloser{io.Discard}}
	if err := p.Flags(fs, "notes", "priority"); err != nil {
		t.Fatalf("flags: %v", err)
	}
	if notes != "hi" || level != entity.High {
		t.Fatalf("notes %q level %s", notes, level)
	}
}

func TestFlagsUnknown(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	p := &Prompter{In: io.NopCloser(&bytes.Buffer{}), Out: nopCloser{io.Discard}}
	if err := p.Flags(fs, "missing"); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestValidator(t *testing.T) {
	level := entity.Medium
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&level, "urgency", "Urgency.")
	fs.Int("minutes", 0, "Minutes.")

	if err := validator(fs.Lookup("urgency"))("urgent"); err == nil {
		t.Errorf("expected an unknown level to be rejected")
	}
	if err := validator(fs.Lookup("urgency"))("low"); err != nil {
		t.Errorf("low: %v", err)
	}
	if err := validator(fs.Lookup("minutes"))("ten"); err == nil {
		t.Errorf("expected a non-number to be rejected")
	}
	if err := validator(fs.Lookup("minutes"))(""); err != nil {
		t.Errorf("empty keeps the default: %v", err)
	}
}

func TestProjectNeedsProjects(t *testing.T) {
	p := &Prompter{In: io.NopCloser(&bytes.Buffer{}), Out: nopCloser{io.Discard}}
	if _, err := p.Project(nil); err != ErrNoProjects {
		t.Fatalf("err = %v, want ErrNoProjects", err)
	}
}
