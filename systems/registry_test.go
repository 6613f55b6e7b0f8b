package systems

import (
	"slices"
	"testing"
)

func TestRegistryRunsInOrder(t *testing.T) {
	reg := NewSystemRegistry()
	var ran []string
	for _, id := range []string{"a", "b", "c"} {
		reg.MustAdd(id, "Phase "+id, func() { ran = append(ran, id) })
	}

	var announced []string
	reg.Run(func(id string) { announced = append(announced, id) })

	want := []string{"a", "b", "c"}
	if !slices.Equal(ran, want) {
		t.Errorf("ran %v, want %v", ran, want)
	}
	if !slices.Equal(announced, want) {
		t.Errorf("before hook saw %v, want %v", announced, want)
	}
	if !slices.Equal(reg.IDs(), want) {
		t.Errorf("IDs = %v", reg.IDs())
	}

	reg.Run(nil)
	if len(ran) != 6 {
		t.Errorf("second run executed %d phases total, want 6", len(ran))
	}
}

func TestRegistryRejectsBadPhases(t *testing.T) {
	reg := NewSystemRegistry()
	if err := reg.Add("x", "X", nil); err == nil {
		t.Error("nil run func accepted")
	}
	if err := reg.Add("x", "X", func() {}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add("x", "Again", func() {}); err == nil {
		t.Error("duplicate ID accepted")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRegistryGetName(t *testing.T) {
	reg := NewSystemRegistry()
	reg.MustAdd("physics", "Physics", func() {})
	if got := reg.GetName("physics"); got != "Physics" {
		t.Errorf("GetName(physics) = %q", got)
	}
	if got := reg.GetName("nope"); got != "nope" {
		t.Errorf("GetName(nope) = %q, want fallback to ID", got)
	}
}
