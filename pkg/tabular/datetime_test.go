package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDatetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"RFC3339", "2024-01-15T10:30:00Z", true},
		{"RFC3339 with offset", "2024-01-15T10:30:00+02:00", true},
		{"ISO without zone", "2024-01-15T10:30:00", true},
		{"date and time with space", "2024-01-15 10:30:00", true},
		{"date only", "2024-01-15", true},
		{"US date", "1/15/2024", true},
		{"US date and time", "1/15/2024 10:30:00", true},
		{"surrounding spaces", "  2024-01-15  ", true},
		{"invalid month", "2024-13-01", false},
		{"invalid day", "2024-02-30", false},
		{"plain number", "20240115", false},
		{"plain text", "yesterday", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsDatetime(tt.value))
		})
	}
}

func TestParseDatetimeValue(t *testing.T) {
	t.Parallel()

	parsed, ok := ParseDatetime("2024-01-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 15, parsed.Day())

	_, ok = ParseDatetime("not a date")
	assert.False(t, ok)
}
