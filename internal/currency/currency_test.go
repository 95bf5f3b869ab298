package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"letters only", "abc", ""},
		{"thousand", "1000", "$1,000"},
		{"below thousand", "999", "$999"},
		{"zero", "0", "$0"},
		{"leading zeros", "0007500", "$7,500"},
		{"millions", "1234567", "$1,234,567"},
		{"already formatted", "$50,000", "$50,000"},
		{"mixed noise", "a1b2c3d4", "$1,234"},
		{"minus sign dropped", "-42", "$42"},
		{"decimal point dropped", "12.50", "$1,250"},
		{"beyond int64", "123456789012345678901234", "$123,456,789,012,345,678,901,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestFormatIgnoresNonDigits(t *testing.T) {
	inputs := []string{"", "abc", "1,000", "$ 12 34", "x9y", "٣٤٥", "50000", "  7  "}

	for _, in := range inputs {
		assert.Equal(t, Format(Digits(in)), Format(in), "input %q", in)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "50000", Digits("$50,000"))
	assert.Equal(t, "", Digits("no digits here"))
	// Only ASCII digits survive; other numeral systems are treated as noise.
	assert.Equal(t, "", Digits("٣٤٥"))
}
