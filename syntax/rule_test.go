package syntax

import (
	"errors"
	"strconv"
	"testing"
)

func TestRuleNames(t *testing.T) {
	seen := make(map[string]Rule)
	for _, r := range Rules() {
		name := r.String()
		if name == "" || name == "invalid" {
			t.Errorf("rule %d has no name", r)
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("rules %d and %d share name %q", prev, r, name)
		}
		seen[name] = r

		got, ok := RuleByName(name)
		if !ok || got != r {
			t.Errorf("RuleByName(%q) = %v, %v; want %v", name, got, ok, r)
		}
	}
}

func TestRuleByNameRejects(t *testing.T) {
	for _, name := range []string{"", "invalid", "EOI", "Prim", "widget"} {
		if r, ok := RuleByName(name); ok {
			t.Errorf("RuleByName(%q) = %v, want not found", name, r)
		}
	}
}

func TestRulesExcludeEOI(t *testing.T) {
	for _, r := range Rules() {
		if r == RuleEOI || r == RuleInvalid {
			t.Errorf("Rules() contains %s", r)
		}
	}
	if RuleEOI.String() != "EOI" {
		t.Errorf("RuleEOI.String() = %q", RuleEOI.String())
	}
	if Rule(200).String() != "invalid" {
		t.Errorf("out-of-range rule = %q", Rule(200).String())
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		rule Rule
		want bool
	}{
		{RuleIdentifier, true},
		{RuleScenePath, true},
		{RuleVersion, true},
		{RuleString, false},
		{RulePrim, false},
		{RuleDocument, false},
		{RuleInvalid, false},
	}
	for _, tt := range tests {
		if got := tt.rule.IsTerminal(); got != tt.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.rule, got, tt.want)
		}
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *SyntaxError
		want string
	}{
		{
			"rules and end of input",
			&SyntaxError{Position: Position{Line: 6, Column: 1}, Expected: []Rule{RulePrim, RuleEOI}, Found: "x"},
			`syntax error at 6:1: expected prim or end of input, found "x"`,
		},
		{
			"literals",
			&SyntaxError{Position: Position{Line: 1, Column: 6}, Expected: []Rule{RuleValue}, Literals: []string{",", ")"}},
			`syntax error at 1:6: expected value, "," or ")", found end of input`,
		},
		{
			"nothing expected",
			&SyntaxError{Position: Position{Line: 2, Column: 3}, Found: "}"},
			`syntax error at 2:3, found "}"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q\nwant      %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrSyntax) {
				t.Error("SyntaxError should match ErrSyntax")
			}
		})
	}
}

func TestDepthError(t *testing.T) {
	err := &DepthError{Position: Position{Offset: 3, Line: 1, Column: 4}, Rule: RuleList, Limit: 3}
	if want := "too deeply nested at 1:4: list exceeds nesting limit 3"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrTooDeep) || errors.Is(err, ErrSyntax) {
		t.Error("DepthError should match only ErrTooDeep")
	}
}

func TestLiteralError(t *testing.T) {
	_, convErr := strconv.ParseInt("99999999999999999999", 10, 64)
	err := &LiteralError{Position: Position{Line: 2, Column: 15}, Rule: RuleInt, Text: "99999999999999999999", Err: convErr}
	if !errors.Is(err, ErrLiteral) {
		t.Error("LiteralError should match ErrLiteral")
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Error("LiteralError should expose the conversion error")
	}
}
