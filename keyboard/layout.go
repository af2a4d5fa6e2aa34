package keyboard

import (
	"fmt"
	"math"
)

// StepsPerDecade is the number of steps that double a frequency. Each key
// row spans one decade.
const StepsPerDecade = 10

// Decade bounds for transposition.
const (
	MinDecade = 0
	MaxDecade = 8
)

// Rows is the physical key layout, lowest row first.
var Rows = [][]string{
	{"z", "x", "c", "v", "b", "n", "m", ",", "."},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]"},
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="},
}

// Aliases maps keys that mirror another key's frequency. The backquote sits
// left of "1" but would need a negative index, so it borrows "p".
var Aliases = map[string]string{
	"`": "p",
}

// Tuning anchors the step scale: step ReferenceStep sounds at ReferenceFreq.
type Tuning struct {
	ReferenceFreq float64
	ReferenceStep int
}

// DefaultTuning puts 440 Hz at step 40 (decade 4, first key).
func DefaultTuning() Tuning {
	return Tuning{ReferenceFreq: 440, ReferenceStep: 40}
}

// Frequency returns the frequency of an absolute step.
func (t Tuning) Frequency(step int) float64 {
	return t.ReferenceFreq * math.Pow(2, float64(step-t.ReferenceStep)/StepsPerDecade)
}

// Step returns the absolute step of the key at index in row for a decade.
func Step(decade, row, index int) int {
	return decade*StepsPerDecade + index + row*StepsPerDecade
}

// KeyStep locates key in the layout and returns its step at decade.
// Aliases resolve to their source key.
func KeyStep(key string, decade int) (int, bool) {
	if src, ok := Aliases[key]; ok {
		key = src
	}
	for row, keys := range Rows {
		for index, k := range keys {
			if k == key {
				return Step(decade, row, index), true
			}
		}
	}
	return 0, false
}

// FrequencyTable maps a key label to its base frequency in Hz.
type FrequencyTable map[string]float64

// BuildTable computes the base frequency of every key for a decade.
func BuildTable(decade int, tuning Tuning) FrequencyTable {
	table := make(FrequencyTable, 48)
	for row, keys := range Rows {
		for index, key := range keys {
			table[key] = tuning.Frequency(Step(decade, row, index))
		}
	}
	for alias, src := range Aliases {
		table[alias] = table[src]
	}
	return table
}

// Lookup returns the base frequency for key.
func (ft FrequencyTable) Lookup(key string) (float64, bool) {
	f, ok := ft[key]
	return f, ok
}

// Label formats a frequency the way key labels show it.
func Label(freq float64) string {
	return fmt.Sprintf("%.1f Hz", freq)
}

// Keys returns every mapped key label: layout order, then aliases.
func Keys() []string {
	var keys []string
	for _, row := range Rows {
		keys = append(keys, row...)
	}
	for alias := range Aliases {
		keys = append(keys, alias)
	}
	return keys
}
