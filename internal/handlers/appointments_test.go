package handlers

import (
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		time    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "date and time",
			date: "2025-01-31", time: "14:30",
			want: time.Date(2025, time.January, 31, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "time with seconds",
			date: "2025-01-31", time: "14:30:15",
			want: time.Date(2025, time.January, 31, 14, 30, 15, 0, time.UTC),
		},
		{
			name: "date only defaults to midnight",
			date: "2025-06-01", time: "",
			want: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "bad date",
			date: "31/01/2025", time: "14:30",
			wantErr: true,
		},
		{
			name: "bad time",
			date: "2025-01-31", time: "2pm",
			wantErr: true,
		},
		{
			name: "empty date",
			date: "", time: "14:30",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseStartTime(tc.date, tc.time)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
