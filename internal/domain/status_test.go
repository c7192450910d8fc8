package domain

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name  string
		input TicketStatus
		want  TicketStatus
	}{
		{"new advances", StatusNew, StatusInProgress},
		{"in progress advances", StatusInProgress, StatusWaitingOnUser},
		{"waiting advances", StatusWaitingOnUser, StatusResolved},
		{"resolved advances", StatusResolved, StatusClosed},
		{"closed clamps", StatusClosed, StatusClosed},
		{"unknown unchanged", TicketStatus("Reopened"), TicketStatus("Reopened")},
		{"empty unchanged", TicketStatus(""), TicketStatus("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStatus(tt.input); got != tt.want {
				t.Errorf("NextStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrevStatus(t *testing.T) {
	tests := []struct {
		name  string
		input TicketStatus
		want  TicketStatus
	}{
		{"new clamps", StatusNew, StatusNew},
		{"in progress retreats", StatusInProgress, StatusNew},
		{"waiting retreats", StatusWaitingOnUser, StatusInProgress},
		{"resolved retreats", StatusResolved, StatusWaitingOnUser},
		{"closed retreats", StatusClosed, StatusResolved},
		{"unknown unchanged", TicketStatus("Reopened"), TicketStatus("Reopened")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrevStatus(tt.input); got != tt.want {
				t.Errorf("PrevStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for i, s := range StatusSequence {
		if i < len(StatusSequence)-1 {
			if got := PrevStatus(NextStatus(s)); got != s {
				t.Errorf("PrevStatus(NextStatus(%q)) = %q, want %q", s, got, s)
			}
		}
		if i > 0 {
			if got := NextStatus(PrevStatus(s)); got != s {
				t.Errorf("NextStatus(PrevStatus(%q)) = %q, want %q", s, got, s)
			}
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range StatusSequence {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if TicketStatus("Reopened").Valid() {
		t.Error("Reopened should not be valid")
	}
}
