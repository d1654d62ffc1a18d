package linter

import (
	"os"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/basiclang/basiccomp/internal/parser"
)

// fixtureCase is one entry of testdata/fixtures.yaml: a source snippet and
// the error kind it should (or should not) produce once parsed and linted.
type fixtureCase struct {
	Name      string `yaml:"name"`
	Source    string `yaml:"source"`
	WantError string `yaml:"want_error"`
}

type fixtureFile struct {
	Cases []fixtureCase `yaml:"cases"`
}

func loadFixtures(t *testing.T) []fixtureCase {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures.yaml")
	if err != nil {
		t.Fatalf("reading fixtures.yaml: %v", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("parsing fixtures.yaml: %v", err)
	}
	return f.Cases
}

// TestLint_Fixtures runs every case in testdata/fixtures.yaml end to end
// through the parser and the full L0-L5 pass sequence, checking that the
// expected error kind (or a clean lint) results.
func TestLint_Fixtures(t *testing.T) {
	for _, c := range loadFixtures(t) {
		t.Run(c.Name, func(t *testing.T) {
			prog, perrs := parser.Parse(c.Source)
			if len(perrs) != 0 {
				for _, e := range perrs {
					if string(e.Kind) == c.WantError {
						return
					}
				}
				t.Fatalf("parse errors %v, want kind %q", perrs, c.WantError)
			}

			_, errs := Lint(prog)
			if c.WantError == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected lint errors: %v", errs)
				}
				return
			}
			for _, e := range errs {
				if string(e.Kind) == c.WantError {
					return
				}
			}
			t.Fatalf("lint errors %v, want kind %q", errs, c.WantError)
		})
	}
}
