package profile

import (
	"sort"
	"testing"
)

// Every built-in profile must satisfy the same validation a loaded
// profile does.
func TestBuiltinsValidate(t *testing.T) {
	for _, code := range Codes() {
		p, err := Get(code)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", code, err)
		}
		if err := Validate(p); err != nil {
			t.Errorf("builtin %s fails validation: %v", code, err)
		}
		if p.Code != code {
			t.Errorf("builtin %s registered under mismatched code %q", code, p.Code)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("ZZ"); err == nil {
		t.Error("Get(ZZ) error = nil, want unknown jurisdiction")
	}
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	if len(codes) == 0 {
		t.Fatal("no built-in profiles registered")
	}
	if !sort.StringsAreSorted(codes) {
		t.Errorf("Codes() = %v, want sorted", codes)
	}
}

func TestRegister(t *testing.T) {
	p := &Profile{
		Code:   "ZY",
		Name:   "Test Register",
		Levels: []MarkerKind{Letter},
	}
	if err := Register(p); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := Get("ZY")
	if err != nil {
		t.Fatalf("Get(ZY) error = %v", err)
	}
	if got.Name != "Test Register" {
		t.Errorf("Get(ZY).Name = %q", got.Name)
	}

	bad := &Profile{Code: "ZX"}
	if err := Register(bad); err == nil {
		t.Error("Register(invalid) error = nil, want validation failure")
	}
}
