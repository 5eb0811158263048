package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimToSentence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "One. Two.", want: "One. Two."},
		{input: "One. Two. Thr", want: "One. Two."},
		{input: "  One.  ", want: "One."},
		{input: "no period", want: "no period"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimToSentence(tt.input), tt.input)
	}
}

func TestOpenAISummarizer_DisabledWithoutKey(t *testing.T) {
	s := NewOpenAISummarizer(Config{})
	assert.False(t, s.Enabled())

	got, err := s.Summarize(context.Background(), "some text")
	require.NoError(t, err)
	assert.Empty(t, got)
}
