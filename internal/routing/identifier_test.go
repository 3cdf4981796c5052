package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Identifier
		wantErr bool
	}{
		{name: "composite", in: "openai/gpt-4", want: Identifier{Provider: "openai", Model: "gpt-4"}},
		{name: "bare", in: "gpt-4", wantErr: true},
		{name: "empty provider", in: "/gpt-4", wantErr: true},
		{name: "empty model", in: "openai/", wantErr: true},
		{name: "nested", in: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDataIntegrity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestModelSegment(t *testing.T) {
	assert.Equal(t, "claude-v1", ModelSegment("anthropic/claude-v1"))
	assert.Equal(t, "claude-v1", ModelSegment("claude-v1"))
}
