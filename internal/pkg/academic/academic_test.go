package academic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	tests := []struct {
		year     int
		expected string
	}{
		{2024, "2024-25"},
		{2025, "2025-26"},
		{2026, "2026-27"},
		{2099, "2099-00"},
	}

	for _, tc := range tests {
		at := time.Date(tc.year, time.March, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.expected, Session(at))
	}
}

func TestToBengaliDigits(t *testing.T) {
	assert.Equal(t, "১০০০১", ToBengaliDigits("10001"))
	assert.Equal(t, "রোল ১২৩", ToBengaliDigits("রোল 123"))
	assert.Equal(t, "abc", ToBengaliDigits("abc"))
	assert.Equal(t, "", ToBengaliDigits(""))
}

func TestLocalDate(t *testing.T) {
	// Day and month without zero padding, as bn-BD renders them.
	assert.Equal(t, "৫/১/২০২৫", LocalDate(time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "৩০/১২/২০২৬", LocalDate(time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC)))
}
