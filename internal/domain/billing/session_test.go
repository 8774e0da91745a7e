package billing

import (
	"testing"
	"time"
)

func TestSessionKey(t *testing.T) {
	tests := []struct {
		name     string
		doctorID string
		date     string
		start    string
		end      string
		want     string
	}{
		{"all fields", "doc-1", "2024-01-10", "09:00", "09:30", "doc-1_2024-01-10_09:00_09:30"},
		{"missing doctor", "", "2024-01-10", "09:00", "09:30", "unknown_2024-01-10_09:00_09:30"},
		{"missing date", "doc-1", "", "09:00", "09:30", "doc-1_no-date_09:00_09:30"},
		{"missing start", "doc-1", "2024-01-10", "", "09:30", "doc-1_2024-01-10_no-time_09:30"},
		{"missing end", "doc-1", "2024-01-10", "09:00", "", "doc-1_2024-01-10_09:00_no-endtime"},
		{"all missing", "", "", "", "", "unknown_no-date_no-time_no-endtime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SessionKey(tt.doctorID, tt.date, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("SessionKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionKey_EqualityContract(t *testing.T) {
	a := SessionKey("doc-1", "2024-01-10", "09:00", "09:30")
	b := SessionKey("doc-1", "2024-01-10", "09:00", "09:30")
	if a != b {
		t.Errorf("identical components should produce identical keys: %q vs %q", a, b)
	}

	// No normalization: a formatting difference is a different session.
	c := SessionKey("doc-1", "2024-1-10", "09:00", "09:30")
	if a == c {
		t.Error("differently formatted dates must not collide")
	}

	d := SessionKey("doc-2", "2024-01-10", "09:00", "09:30")
	if a == d {
		t.Error("different doctors must not share a session key")
	}
}

func ts(s string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestRankSession_ByCreationTimestamp(t *testing.T) {
	// Input deliberately out of order; numbering must follow timestamps.
	members := []SessionMember{
		{ID: "c", CreatedAt: ts("2024-01-10T08:45:00Z")},
		{ID: "a", CreatedAt: ts("2024-01-10T08:15:00Z")},
		{ID: "b", CreatedAt: ts("2024-01-10T08:30:00Z")},
	}

	numbers := AppointmentNumbers(members)
	if numbers["a"] != 1 || numbers["b"] != 2 || numbers["c"] != 3 {
		t.Errorf("expected a=1 b=2 c=3, got %v", numbers)
	}
}

func TestRankSession_TimestampedBeforeUntimestamped(t *testing.T) {
	members := []SessionMember{
		{ID: "x"},
		{ID: "y", CreatedAt: ts("2024-01-10T08:15:00Z")},
	}

	ranked := RankSession(members)
	if ranked[0].ID != "y" {
		t.Errorf("member with timestamp should rank first, got %q", ranked[0].ID)
	}
}

func TestRankSession_FallbackToID(t *testing.T) {
	members := []SessionMember{
		{ID: "zeta"},
		{ID: "alpha"},
		{ID: "mid"},
	}

	ranked := RankSession(members)
	want := []string{"alpha", "mid", "zeta"}
	for i, w := range want {
		if ranked[i].ID != w {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].ID, w)
		}
	}
}

func TestAppointmentNumbers_GaplessPermutation(t *testing.T) {
	members := []SessionMember{
		{ID: "a", CreatedAt: ts("2024-01-10T08:00:00Z")},
		{ID: "b"},
		{ID: "c", CreatedAt: ts("2024-01-10T08:01:00Z")},
		{ID: "d"},
		{ID: "e", CreatedAt: ts("2024-01-10T08:01:00Z")}, // tie with c
	}

	numbers := AppointmentNumbers(members)
	if len(numbers) != len(members) {
		t.Fatalf("expected %d numbers, got %d", len(members), len(numbers))
	}

	seen := make(map[int]bool)
	for id, n := range numbers {
		if n < 1 || n > len(members) {
			t.Errorf("number for %q out of range: %d", id, n)
		}
		if seen[n] {
			t.Errorf("duplicate appointment number %d", n)
		}
		seen[n] = true
	}
}

func TestRankSession_DoesNotMutateInput(t *testing.T) {
	members := []SessionMember{
		{ID: "b"},
		{ID: "a"},
	}
	RankSession(members)
	if members[0].ID != "b" {
		t.Error("input slice order must be preserved")
	}
}
