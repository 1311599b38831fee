package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSheetID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full url",
			input: "https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0",
			want:  "1AbC-dEf_123",
		},
		{name: "bare id", input: "1AbC-dEf_123", want: "1AbC-dEf_123"},
		{name: "padded id", input: "  1AbC-dEf_123 ", want: "1AbC-dEf_123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSheetID(tt.input))
		})
	}
}

func TestRowForHeaders(t *testing.T) {
	row := rowForHeaders([]string{"a", "b", "c"}, map[string]string{
		"a": "1",
		"c": "3",
		"x": "ignored",
	})
	assert.Equal(t, []interface{}{"1", "", "3"}, row)
}

func TestRowForHeadersCoversTicketColumns(t *testing.T) {
	row := rowForHeaders(TicketsHeaders, map[string]string{
		"id":     "TCK-1",
		"status": "Resolved",
	})
	require.Len(t, row, len(TicketsHeaders))
	assert.Equal(t, "TCK-1", row[0])
	assert.Equal(t, "Resolved", row[11])
}

func TestRecordsFromValues(t *testing.T) {
	t.Run("short rows padded", func(t *testing.T) {
		values := [][]interface{}{
			{"email", "name", "role"},
			{"a@example.com", "Ana"},
			{"b@example.com", "Bob", "lead"},
		}
		records := recordsFromValues(values)
		require.Len(t, records, 2)
		assert.Equal(t, "", records[0]["role"])
		assert.Equal(t, "lead", records[1]["role"])
	})

	t.Run("header only", func(t *testing.T) {
		assert.Nil(t, recordsFromValues([][]interface{}{{"email"}}))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, recordsFromValues(nil))
	})
}
