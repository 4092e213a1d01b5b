package admin

import (
	"testing"
	"time"
)

func TestDebounceShortTermsNeverFire(t *testing.T) {
	d := NewDebounce(10*time.Millisecond, 3)

	tests := []struct {
		term string
		fire bool
	}{
		{"a", false},
		{"ab", false},
		{"abc", true},
		{"abcd", true},
		{"", true}, // empty fires as a reset
	}

	for _, tt := range tests {
		t.Run("term "+tt.term, func(t *testing.T) {
			_, fire := d.Input(tt.term)
			if fire != tt.fire {
				t.Errorf("Input(%q) fire = %v, want %v", tt.term, fire, tt.fire)
			}
		})
	}
}

func TestDebounceMinLenCountsRunes(t *testing.T) {
	d := NewDebounce(10*time.Millisecond, 3)

	// Two runes, more than three bytes.
	if _, fire := d.Input("áé"); fire {
		t.Error("expected two runes below the minimum not to fire")
	}
	if _, fire := d.Input("áéí"); !fire {
		t.Error("expected three runes to fire")
	}
}

func TestDebounceSupersedesPendingTickets(t *testing.T) {
	// Given a burst of keystrokes
	d := NewDebounce(10*time.Millisecond, 3)

	t1, fire1 := d.Input("vil")
	t2, fire2 := d.Input("vill")
	t3, fire3 := d.Input("villa")

	if !fire1 || !fire2 || !fire3 {
		t.Fatal("expected every keystroke past the minimum to schedule")
	}

	// When the debounce interval elapses
	// Then only the final keystroke's ticket is still current
	if d.Current(t1) || d.Current(t2) {
		t.Error("expected earlier tickets superseded")
	}
	if !d.Current(t3) {
		t.Error("expected the latest ticket current")
	}
	if d.Term() != "villa" {
		t.Errorf("expected term 'villa', got %q", d.Term())
	}
}

func TestDebounceNonFiringInputStillSupersedes(t *testing.T) {
	d := NewDebounce(10*time.Millisecond, 3)

	ticket, _ := d.Input("villa")
	// Deleting back below the minimum must cancel the pending fetch.
	if _, fire := d.Input("vi"); fire {
		t.Error("expected a two-rune term not to fire")
	}
	if d.Current(ticket) {
		t.Error("expected the pending ticket invalidated by the newer keystroke")
	}
}

func TestDebounceDefaults(t *testing.T) {
	d := NewDebounce(0, 0)
	if d.Interval() != DefaultSearchDebounce {
		t.Errorf("expected default interval, got %s", d.Interval())
	}
	if _, fire := d.Input("ab"); fire {
		t.Error("expected the default minimum of 3 to apply")
	}
}
