package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantTitle      string
		wantCollection string
		wantBody       string
	}{
		{
			name:      "Heading Becomes Title",
			input:     "# My Title\nBody text",
			wantTitle: "My Title",
			wantBody:  "Body text",
		},
		{
			name:     "No Heading",
			input:    "Just a thought.\nSecond line",
			wantBody: "Just a thought.\nSecond line",
		},
		{
			name:      "Deeper Heading",
			input:     "###   Spaced Out  \nBody",
			wantTitle: "Spaced Out",
			wantBody:  "Body",
		},
		{
			name:      "Heading Only",
			input:     "# Lonely",
			wantTitle: "Lonely",
			wantBody:  "",
		},
		{
			name:  "Empty File",
			input: ``,
		},
		{
			name: "Frontmatter Title And Collection",
			input: `---
title: Hello World
collection: notes
---
# Content Here`,
			wantTitle:      "Hello World",
			wantCollection: "notes",
			wantBody:       "# Content Here",
		},
		{
			name: "Frontmatter Without Title Falls Back To Heading",
			input: `---
collection: notes
tags: [a, b]
---
# From Heading
Line 1
Line 2`,
			wantTitle:      "From Heading",
			wantCollection: "notes",
			wantBody:       "Line 1\nLine 2",
		},
		{
			name:      "CRLF Frontmatter",
			input:     "---\r\ntitle: Windows\r\n---\r\nBody\r\n",
			wantTitle: "Windows",
			wantBody:  "Body\r\n",
		},
		{
			name:     "Thematic Break Is Content",
			input:    "---\nJust a paragraph.\n---\nMore",
			wantBody: "---\nJust a paragraph.\n---\nMore",
		},
		{
			name:     "Empty Block Is Content",
			input:    "---\n---\nBody",
			wantBody: "---\n---\nBody",
		},
		{
			name:     "Sequence Block Is Content",
			input:    "---\n- one\n- two\n---\nBody",
			wantBody: "---\n- one\n- two\n---\nBody",
		},
		{
			name: "Invalid YAML Is Content",
			input: `---
key: : value
---
Content`,
			wantBody: "---\nkey: : value\n---\nContent",
		},
		{
			name: "Unclosed Block Is Content",
			input: `---
title: Unclosed
Content`,
			wantBody: "---\ntitle: Unclosed\nContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantCollection, got.Collection)
			assert.Equal(t, tt.wantBody, got.Body)
		})
	}
}

func TestSplitTitle(t *testing.T) {
	title, body := SplitTitle("# My Title\nBody text")
	assert.Equal(t, "My Title", title)
	assert.Equal(t, "Body text", body)

	title, body = SplitTitle("Body only\n# Not a title")
	assert.Empty(t, title)
	assert.Equal(t, "Body only\n# Not a title", body)
}
