package store

import (
	"reflect"
	"testing"

	"github.com/cooper/evented-configuration/value"
)

func TestBlockAddressing(t *testing.T) {
	tests := []struct {
		name string
		got  Block
		want Block
	}{
		{"section constructor", Section("main"), Block{Type: "section", Name: "main"}},
		{"named constructor", Named("cookies", "sugar"), Block{Type: "cookies", Name: "sugar"}},
		{"empty type collapses", Named("", "main"), Block{Type: "section", Name: "main"}},
		{"literal section type collapses", Named("section", "main"), Block{Type: "section", Name: "main"}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

func TestBlockString(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{Section("main"), "main"},
		{Named("cookies", "sugar"), "cookies:sugar"},
		{Block{Name: "main"}, "main"},
	}

	for _, tt := range tests {
		if got := tt.block.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.block, got, tt.want)
		}
	}
}

func TestSetIfChanged(t *testing.T) {
	s := New()
	b := Named("cookies", "sugar")

	// First assignment: absent -> value.
	changed, old := s.SetIfChanged(b, "favorite", value.String("snickerdoodle"))
	if !changed {
		t.Error("first assignment reported unchanged")
	}
	if old != nil {
		t.Errorf("first assignment old = %v, want nil", old)
	}

	// Same value again: no change.
	changed, old = s.SetIfChanged(b, "favorite", value.String("snickerdoodle"))
	if changed {
		t.Error("equal reassignment reported changed")
	}
	if !value.Equal(old, value.String("snickerdoodle")) {
		t.Errorf("old = %v, want previous value", old)
	}

	// Different value: change with the previous value reported.
	changed, old = s.SetIfChanged(b, "favorite", value.String("chocolate chip"))
	if !changed {
		t.Error("new value reported unchanged")
	}
	if !value.Equal(old, value.String("snickerdoodle")) {
		t.Errorf("old = %v, want snickerdoodle", old)
	}

	got, ok := s.Get(b, "favorite")
	if !ok || !value.Equal(got, value.String("chocolate chip")) {
		t.Errorf("Get = %v, %v; want chocolate chip, true", got, ok)
	}
}

func TestSetIfChangedStructuralEquality(t *testing.T) {
	s := New()
	b := Section("main")

	seq := value.Sequence{value.String("a"), value.Number(1)}
	if changed, _ := s.SetIfChanged(b, "list", seq); !changed {
		t.Fatal("initial sequence reported unchanged")
	}

	// A distinct but structurally equal sequence is not a change.
	same := value.Sequence{value.String("a"), value.Number(1)}
	if changed, _ := s.SetIfChanged(b, "list", same); changed {
		t.Error("structurally equal sequence reported changed")
	}

	longer := value.Sequence{value.String("a"), value.Number(1), value.Number(2)}
	if changed, _ := s.SetIfChanged(b, "list", longer); !changed {
		t.Error("longer sequence reported unchanged")
	}
}

func TestSetIfChangedNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetIfChanged(nil) did not panic")
		}
	}()
	New().SetIfChanged(Section("main"), "key", nil)
}

func TestGetMissing(t *testing.T) {
	s := New()
	if v, ok := s.Get(Section("nope"), "key"); ok || v != nil {
		t.Errorf("Get on empty store = %v, %v; want nil, false", v, ok)
	}
}

func TestHasBlock(t *testing.T) {
	s := New()
	if s.HasBlock(Section("main")) {
		t.Error("empty store has block")
	}
	s.SetIfChanged(Section("main"), "key", value.Number(1))
	if !s.HasBlock(Section("main")) {
		t.Error("block with a key not reported")
	}
	if !s.HasBlock(Block{Name: "main"}) {
		t.Error("untyped address did not reach the section block")
	}
	if s.HasBlock(Named("cookies", "main")) {
		t.Error("typed block confused with section block")
	}
}

func TestListings(t *testing.T) {
	s := New()
	s.SetIfChanged(Named("cookies", "sugar"), "favorite", value.String("snickerdoodle"))
	s.SetIfChanged(Named("cookies", "peanut butter"), "favorite", value.String("classic"))
	s.SetIfChanged(Section("main"), "b", value.Number(2))
	s.SetIfChanged(Section("main"), "a", value.Number(1))

	if got, want := s.BlockTypes(), []string{"cookies", "section"}; !reflect.DeepEqual(got, want) {
		t.Errorf("BlockTypes = %v, want %v", got, want)
	}
	if got, want := s.Names("cookies"), []string{"peanut butter", "sugar"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names(cookies) = %v, want %v", got, want)
	}
	if got, want := s.Names(""), []string{"main"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names(\"\") = %v, want %v", got, want)
	}
	if got, want := s.Keys(Section("main")), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	if got, want := s.Values(Section("main")), []value.Value{value.Number(1), value.Number(2)}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
	if got := s.Names("unknown"); len(got) != 0 {
		t.Errorf("Names(unknown) = %v, want empty", got)
	}
	if got := s.Keys(Named("cookies", "missing")); len(got) != 0 {
		t.Errorf("Keys of missing block = %v, want empty", got)
	}
	if got, want := s.Count(), 4; got != want {
		t.Errorf("Count = %d, want %d", got, want)
	}
}

func TestEntriesIsACopy(t *testing.T) {
	s := New()
	s.SetIfChanged(Section("main"), "key", value.Number(1))

	entries := s.Entries(Section("main"))
	if want := map[string]value.Value{"key": value.Number(1)}; !reflect.DeepEqual(entries, want) {
		t.Fatalf("Entries = %v, want %v", entries, want)
	}

	entries["key"] = value.Number(99)
	entries["extra"] = value.Number(0)
	if v, _ := s.Get(Section("main"), "key"); !value.Equal(v, value.Number(1)) {
		t.Error("mutating the returned map changed the store")
	}
	if _, ok := s.Get(Section("main"), "extra"); ok {
		t.Error("mutating the returned map added a store key")
	}
}

func TestStoreOnlyGrows(t *testing.T) {
	s := New()
	s.SetIfChanged(Section("main"), "keep", value.Number(1))
	s.SetIfChanged(Section("main"), "update", value.Number(2))

	// A later pass that never mentions "keep" leaves it in place.
	s.SetIfChanged(Section("main"), "update", value.Number(3))
	if v, ok := s.Get(Section("main"), "keep"); !ok || !value.Equal(v, value.Number(1)) {
		t.Errorf("untouched key = %v, %v; want 1, true", v, ok)
	}
	if v, _ := s.Get(Section("main"), "update"); !value.Equal(v, value.Number(3)) {
		t.Errorf("updated key = %v, want 3", v)
	}
}

func TestNewFromMap(t *testing.T) {
	seed := map[string]map[string]map[string]value.Value{
		"section": {
			"main":  {"key": value.Number(1)},
			"empty": {},
		},
	}
	s := NewFromMap(seed)

	if v, ok := s.Get(Section("main"), "key"); !ok || !value.Equal(v, value.Number(1)) {
		t.Errorf("seeded key = %v, %v; want 1, true", v, ok)
	}

	// An empty inner map does not make the block visible.
	if s.HasBlock(Section("empty")) {
		t.Error("block with no keys reported present")
	}
	if got, want := s.Names(""), []string{"main"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	// The Store owns the seed map; writes land in it.
	s.SetIfChanged(Section("main"), "other", value.Number(2))
	if _, ok := seed["section"]["main"]["other"]; !ok {
		t.Error("write did not land in the seed map")
	}

	if s := NewFromMap(nil); s.Count() != 0 {
		t.Error("NewFromMap(nil) not empty")
	}
}
