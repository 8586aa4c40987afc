package tabstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	t.Run("Index and contains", func(t *testing.T) {
		t.Parallel()

		hdr := newHeader([]string{"song", "artist", "year"})
		assert.Equal(t, 1, hdr.index("artist"))
		assert.Equal(t, -1, hdr.index("Artist"))
		assert.True(t, hdr.contains("year"))
		assert.False(t, hdr.contains("decade"))
	})

	t.Run("Equal", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			header1  header
			header2  header
			expected bool
		}{
			{
				name:     "Equal headers",
				header1:  newHeader([]string{"song", "artist"}),
				header2:  newHeader([]string{"song", "artist"}),
				expected: true,
			},
			{
				name:     "Different length",
				header1:  newHeader([]string{"song", "artist"}),
				header2:  newHeader([]string{"song"}),
				expected: false,
			},
			{
				name:     "Different content",
				header1:  newHeader([]string{"song", "artist"}),
				header2:  newHeader([]string{"song", "year"}),
				expected: false,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				assert.Equal(t, tt.expected, tt.header1.equal(tt.header2))
			})
		}
	})
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, newRecord([]string{"a", "b"}).equal(newRecord([]string{"a", "b"})))
	assert.False(t, newRecord([]string{"a", "b"}).equal(newRecord([]string{"a"})))
	assert.False(t, newRecord([]string{"a", "b"}).equal(newRecord([]string{"a", "c"})))
}

func TestTableKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tab", TableTab.String())
	assert.Equal(t, "play", TablePlay.String())
	assert.Equal(t, "request", TableRequest.String())
	assert.Equal(t, "unknown", TableKind(99).String())
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected bool
	}{
		{"1984", true},
		{"3.5", true},
		{"-2", true},
		{"1e3", true},
		{"", false},
		{"Unknown", false},
		{"3,5", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, isNumeric(tt.value))
		})
	}
}
