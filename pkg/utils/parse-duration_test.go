package utils

import (
	"testing"
	"time"
)

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  time.Duration
		expectErr bool
	}{
		{name: "hours", value: "24h", expected: 24 * time.Hour},
		{name: "minutes", value: "90m", expected: 90 * time.Minute},
		{name: "combined", value: "1h30m", expected: 90 * time.Minute},
		{name: "empty", value: "", expectErr: true},
		{name: "garbage", value: "not a duration", expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := ParseDurationString(test.value)
			if test.expectErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != test.expected {
				t.Errorf("Unexpected result. Got: %v, Expected: %v", result, test.expected)
			}
		})
	}
}
