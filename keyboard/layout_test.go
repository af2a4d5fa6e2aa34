package keyboard

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestReferenceExamples(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		decade int
		key    string
		want   float64
	}{
		{3, "z", 220},
		{4, "z", 440},
		{3, "a", 440},
		{4, "q", 1760},
		{0, "z", 27.5},
	}
	for _, tt := range tests {
		got, ok := BuildTable(tt.decade, tuning).Lookup(tt.key)
		if !ok {
			t.Fatalf("%q missing from decade %d table", tt.key, tt.decade)
		}
		if !approx(got, tt.want) {
			t.Errorf("decade %d %q = %v, want %v", tt.decade, tt.key, got, tt.want)
		}
	}
}

func TestFrequencyIncreasesWithStep(t *testing.T) {
	tuning := DefaultTuning()
	for decade := MinDecade; decade <= MaxDecade; decade++ {
		table := BuildTable(decade, tuning)
		for _, a := range Keys() {
			for _, b := range Keys() {
				sa, _ := KeyStep(a, decade)
				sb, _ := KeyStep(b, decade)
				fa, fb := table[a], table[b]
				switch {
				case sa < sb && !(fa < fb):
					t.Errorf("decade %d: step %d (%q) %v Hz not below step %d (%q) %v Hz", decade, sa, a, fa, sb, b, fb)
				case sb-sa == StepsPerDecade && !approx(fb, 2*fa):
					t.Errorf("decade %d: %q -> %q is 10 steps but %v -> %v Hz", decade, a, b, fa, fb)
				}
			}
		}
	}
}

func TestAliasMirrorsSource(t *testing.T) {
	tuning := DefaultTuning()
	for decade := MinDecade; decade <= MaxDecade; decade++ {
		table := BuildTable(decade, tuning)
		for alias, src := range Aliases {
			if table[alias] != table[src] {
				t.Errorf("decade %d: %q = %v, want %q's %v", decade, alias, table[alias], src, table[src])
			}
		}
	}
}

func TestTableCoversLayout(t *testing.T) {
	table := BuildTable(DefaultStartDecade, DefaultTuning())
	if len(table) != len(Keys()) {
		t.Errorf("table has %d keys, want %d", len(table), len(Keys()))
	}
	if _, ok := table.Lookup("'"); ok {
		t.Error("unmapped key found in table")
	}
}

func TestKeyStep(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"z", 30},
		{".", 38},
		{"a", 40},
		{"]", 61},
		{"=", 71},
		{"`", 59},
	}
	for _, tt := range tests {
		got, ok := KeyStep(tt.key, 3)
		if !ok || got != tt.want {
			t.Errorf("KeyStep(%q, 3) = %d, %v; want %d", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := KeyStep("Shift", 3); ok {
		t.Error("KeyStep found a modifier")
	}
}

func TestLabel(t *testing.T) {
	if got := Label(220); got != "220.0 Hz" {
		t.Errorf("Label(220) = %q", got)
	}
	if got := Label(261.6255); got != "261.6 Hz" {
		t.Errorf("Label(261.6255) = %q", got)
	}
}
