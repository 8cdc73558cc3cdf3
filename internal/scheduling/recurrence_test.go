package scheduling

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestExpand_Daily(t *testing.T) {
	start := date(2025, time.March, 10, 9, 30)
	got, err := Expand(start, PatternDaily, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(got))
	}
	for i, occ := range got {
		want := start.AddDate(0, 0, i)
		if !occ.Equal(want) {
			t.Fatalf("occurrence %d: expected %s, got %s", i, want, occ)
		}
	}
}

func TestExpand_WeeklyPairwiseSpacing(t *testing.T) {
	start := date(2025, time.March, 10, 14, 0)
	got, err := Expand(start, PatternWeekly, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if diff := got[i].Sub(got[i-1]); diff != 7*24*time.Hour {
			t.Fatalf("occurrences %d and %d are %s apart, expected 168h", i-1, i, diff)
		}
	}
}

func TestExpand_MonthlyPreservesDay(t *testing.T) {
	start := date(2025, time.April, 15, 10, 0)
	got, err := Expand(start, PatternMonthly, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2025, time.April, 15, 10, 0),
		date(2025, time.May, 15, 10, 0),
		date(2025, time.June, 15, 10, 0),
		date(2025, time.July, 15, 10, 0),
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExpand_MonthlyClampsShortMonths(t *testing.T) {
	// Jan 31 -> Feb 28 -> Mar 28: the clamp applies once and the clamped day
	// carries forward. Nothing lands in March 3 territory.
	start := date(2025, time.January, 31, 11, 0)
	got, err := Expand(start, PatternMonthly, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2025, time.January, 31, 11, 0),
		date(2025, time.February, 28, 11, 0),
		date(2025, time.March, 28, 11, 0),
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExpand_MonthlyLeapYear(t *testing.T) {
	start := date(2024, time.January, 30, 8, 0)
	got, err := Expand(start, PatternMonthly, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := date(2024, time.February, 29, 8, 0); !got[1].Equal(want) {
		t.Fatalf("expected leap-year clamp to %s, got %s", want, got[1])
	}
}

func TestExpand_NoneAndSingleCount(t *testing.T) {
	start := date(2025, time.June, 1, 12, 0)

	cases := []struct {
		name    string
		pattern Pattern
		count   int
	}{
		{"none ignores count", PatternNone, 10},
		{"count one", PatternWeekly, 1},
		{"count zero normalized", PatternDaily, 0},
		{"negative count normalized", PatternMonthly, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expand(start, tc.pattern, tc.count)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected exactly 1 occurrence, got %d", len(got))
			}
			if !got[0].Equal(start) {
				t.Fatalf("expected start instant back, got %s", got[0])
			}
		})
	}
}

func TestExpand_UnknownPattern(t *testing.T) {
	if _, err := Expand(date(2025, time.June, 1, 12, 0), Pattern("yearly"), 2); err == nil {
		t.Fatal("expected an error for an unknown pattern")
	}
}
