package usd

import "testing"

func TestSpecifierRoundTrip(t *testing.T) {
	for _, s := range []Specifier{SpecifierDef, SpecifierOver, SpecifierClass} {
		got, ok := ParseSpecifier(s.String())
		if !ok || got != s {
			t.Errorf("ParseSpecifier(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if got := Specifier(9).String(); got != "Specifier(9)" {
		t.Errorf("Specifier(9).String() = %q", got)
	}
}

func TestListOpString(t *testing.T) {
	tests := []struct {
		op   ListOp
		want string
	}{
		{ListOpExplicit, ""},
		{ListOpDelete, "delete"},
		{ListOpAdd, "add"},
		{ListOpPrepend, "prepend"},
		{ListOpAppend, "append"},
		{ListOp(42), "ListOp(42)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("ListOp(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
	if _, ok := ParseListOp("remove"); ok {
		t.Error("ParseListOp(remove) should fail")
	}
}

func TestQualifiers(t *testing.T) {
	var q Qualifiers
	for _, name := range []string{"varying", "custom"} {
		bit, ok := ParseQualifier(name)
		if !ok {
			t.Fatalf("ParseQualifier(%q) failed", name)
		}
		q |= bit
	}
	if got := q.String(); got != "custom varying" {
		t.Errorf("String() = %q, want canonical order", got)
	}
	if q.Has(QualifierUniform) {
		t.Error("uniform should not be set")
	}
	if !q.Has(QualifierCustom | QualifierVarying) {
		t.Error("custom|varying should be set")
	}
	if _, ok := ParseQualifier("rel"); ok {
		t.Error("ParseQualifier(rel) should fail")
	}
}

func TestPropertySuffix(t *testing.T) {
	if k, ok := ParsePropertySuffix(".timeSamples"); !ok || k != PropertyTimeSamples {
		t.Errorf("ParsePropertySuffix(.timeSamples) = %v, %v", k, ok)
	}
	if k, ok := ParsePropertySuffix(".connect"); !ok || k.String() != "connect" {
		t.Errorf("ParsePropertySuffix(.connect) = %v, %v", k, ok)
	}
	if _, ok := ParsePropertySuffix(".default"); ok {
		t.Error("unknown suffix should fail")
	}
}
