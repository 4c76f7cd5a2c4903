package timeline

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"00:00:00:000", 0},
		{"00:00:01:500", 1500 * time.Millisecond},
		{"01:02:03:004", time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond},
		{"-00:00:01:000", -time.Second},
		{"00:01:05", time.Minute + 5*time.Second},
		{"00:00:02.5", 2500 * time.Millisecond},
		{"00:00:02.250", 2250 * time.Millisecond},
		{"1.5s", 1500 * time.Millisecond},
		{"-250ms", -250 * time.Millisecond},
		{" 5s ", 5 * time.Second},
		{"1.0004s", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if err != nil {
				t.Fatalf("ParseClock(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClockRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"00:00",
		"00:61:00:000",
		"00:00:61:000",
		"00:00:00:1000",
		"00:00:xx:000",
		"00:00:01.",
		"00:00:01.1234",
		"1:2:3:4:5",
		"3000000:00:00:000",
		"-3000000:00:00:000",
		"2562047:47:16:854",
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseClock(input); err == nil {
				t.Errorf("ParseClock(%q) expected error", input)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00:000"},
		{1500 * time.Millisecond, "00:00:01:500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "01:02:03:004"},
		{-time.Second, "-00:00:01:000"},
		{100 * time.Hour, "100:00:00:000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatClock(tt.input); got != tt.want {
				t.Errorf("FormatClock(%v) = %q, want %q", tt.input, got, tt.want)
			}
			back, err := ParseClock(tt.want)
			if err != nil {
				t.Fatalf("ParseClock(%q) returned error: %v", tt.want, err)
			}
			if back != tt.input {
				t.Errorf("round trip of %v gave %v", tt.input, back)
			}
		})
	}
}
