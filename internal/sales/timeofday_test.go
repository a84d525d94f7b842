//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"encoding/json"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input     string
		want      TimeOfDay
		wantError bool
	}{
		{"00:00:00", NewTimeOfDay(0, 0, 0), false},
		{"11:59:59", NewTimeOfDay(11, 59, 59), false},
		{"19:10:00", NewTimeOfDay(19, 10, 0), false},
		{" 07:05:09 ", NewTimeOfDay(7, 5, 9), false},
		{"17:01", NewTimeOfDay(17, 1, 0), false},
		{"08:30:15.250", NewTimeOfDay(8, 30, 15), false},
		{"24:00:00", TimeOfDay{}, true},
		{"12:60:00", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayValid(t *testing.T) {
	valid := []TimeOfDay{NewTimeOfDay(0, 0, 0), NewTimeOfDay(23, 59, 59)}
	invalid := []TimeOfDay{NewTimeOfDay(24, 0, 0), NewTimeOfDay(-1, 0, 0), NewTimeOfDay(1, 60, 0), NewTimeOfDay(1, 0, 60)}

	for _, tod := range valid {
		if !tod.Valid() {
			t.Errorf("%v should be valid", tod)
		}
	}
	for _, tod := range invalid {
		if tod.Valid() {
			t.Errorf("%v should be invalid", tod)
		}
	}
}

func TestTimeOfDayMicroseconds(t *testing.T) {
	tod := NewTimeOfDay(17, 0, 1)
	us := tod.Microseconds()
	if us != 61201*1_000_000 {
		t.Errorf("Microseconds() = %d", us)
	}
	if back := TimeOfDayFromMicroseconds(us + 999); back != tod {
		t.Errorf("Round trip through microseconds gave %v", back)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	b, err := json.Marshal(NewTimeOfDay(9, 5, 0))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"09:05:00"` {
		t.Errorf("Unexpected JSON %s", b)
	}

	var tod TimeOfDay
	if err := json.Unmarshal([]byte(`"21:15:30"`), &tod); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if tod != NewTimeOfDay(21, 15, 30) {
		t.Errorf("Unexpected value %v", tod)
	}
}
