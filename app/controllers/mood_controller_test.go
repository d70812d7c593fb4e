package controllers

import (
	"testing"
	"time"
)

func TestParseRangeBound(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isEnd   bool
		want    string
		wantErr bool
	}{
		{name: "rfc3339 instant", value: "2026-03-01T10:30:00Z", want: "2026-03-01T10:30:00Z"},
		{name: "bare start date", value: "2026-03-01", want: "2026-03-01T00:00:00Z"},
		{name: "bare end date widens to end of day", value: "2026-03-01", isEnd: true, want: "2026-03-01T23:59:59.999999999Z"},
		{name: "rfc3339 end date not widened", value: "2026-03-01T10:30:00Z", isEnd: true, want: "2026-03-01T10:30:00Z"},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace", value: "   ", wantErr: true},
		{name: "garbage", value: "yesterday", wantErr: true},
		{name: "wrong order", value: "01-03-2026", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseRangeBound(tt.value, tt.isEnd)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got %v", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		want, parseErr := time.Parse(time.RFC3339Nano, tt.want)
		if parseErr != nil {
			t.Fatalf("%s: bad expectation %q", tt.name, tt.want)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: parseRangeBound(%q) = %v, want %v", tt.name, tt.value, got, want)
		}
	}
}
