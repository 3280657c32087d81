package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMonetaryValue(t *testing.T) {
	tests := []struct {
		input string
		want  Field
	}{
		{"R$ 1.234,56 (estimado)", Found("1.234,56")},
		{"R$ 1.234.567,89", Found("1.234.567,89")},
		{"Valor: 850,5", Found("850,5")},
		{"R$ 12.000", Found("12.000")},
		{"indisponível", Field{}},
		{"", Field{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMonetaryValue(tt.input))
		})
	}

	assert.Equal(t, NotFound, ParseMonetaryValue("indisponível").String())
}

func TestParseMonetaryValueIdempotent(t *testing.T) {
	for _, input := range []string{"R$ 1.234,56 (estimado)", "R$ 98.000,00", "Total 7,5 mil"} {
		first := ParseMonetaryValue(input)
		assert.True(t, first.Found)
		assert.Equal(t, first, ParseMonetaryValue(first.Value), input)
	}
}
