package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentionHandles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "no handles here", nil},
		{"single", "nice one @banksy", []string{"banksy"}},
		{"multiple", "@alice meet @bob", []string{"alice", "bob"}},
		{"deduplicated in order", "@bob and @alice and @bob again", []string{"bob", "alice"}},
		{"case sensitive", "@Alice and @alice differ", []string{"Alice", "alice"}},
		{"underscores and digits", "cc @street_art_99", []string{"street_art_99"}},
		{"punctuation boundary", "thanks @alice!", []string{"alice"}},
		{"email is still matched after at", "mail me a@b", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMentionHandles(tt.content))
		})
	}
}
