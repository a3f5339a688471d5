// Package draft turns raw post content into a title, an optional collection
// and a body. Content may start with a YAML frontmatter block; otherwise a
// leading "# Heading" line becomes the title.
package draft

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Draft is post content split into its parts.
// Empty Title or Collection means the field is absent.
type Draft struct {
	Title      string
	Collection string
	Body       string
}

// frontmatter lists the recognized keys. Anything else is ignored.
type frontmatter struct {
	Title      string `yaml:"title"`
	Collection string `yaml:"collection"`
}

// Parse reads a stream and decodes it into a Draft.
//
// A leading "---" block counts as frontmatter only when it is closed and
// holds a YAML mapping. Anything else, such as a thematic break followed by
// prose, is ordinary content. A frontmatter title wins over the heading rule,
// which is then not applied to the body.
func Parse(r io.Reader) (*Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := string(data)
	d := &Draft{}

	fm, body, ok := splitFrontmatter(content)
	if !ok {
		d.Title, d.Body = SplitTitle(content)
		return d, nil
	}

	d.Collection = strings.TrimSpace(fm.Collection)
	if title := strings.TrimSpace(fm.Title); title != "" {
		d.Title = title
		d.Body = body
		return d, nil
	}

	d.Title, d.Body = SplitTitle(body)
	return d, nil
}

// splitFrontmatter separates a leading YAML mapping from the rest of the
// content. It reports false when the content has no such block.
func splitFrontmatter(content string) (frontmatter, string, bool) {
	var fm frontmatter
	if !strings.HasPrefix(content, fence+"\n") && !strings.HasPrefix(content, fence+"\r\n") {
		return fm, "", false
	}

	lines := strings.Split(content, "\n")
	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == fence {
			closing = i
			break
		}
	}
	if closing < 0 {
		return fm, "", false
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:closing], "\n")), &doc); err != nil {
		return fm, "", false
	}
	if len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return fm, "", false
	}
	if err := doc.Content[0].Decode(&fm); err != nil {
		return fm, "", false
	}

	return fm, strings.Join(lines[closing+1:], "\n"), true
}

// SplitTitle applies the heading rule: when the first line starts with '#',
// it is removed from the body and returned, without the leading '#' run and
// surrounding whitespace, as the title.
func SplitTitle(content string) (title, body string) {
	first, rest, found := strings.Cut(content, "\n")
	if !strings.HasPrefix(first, "#") {
		return "", content
	}
	title = strings.TrimSpace(strings.TrimLeft(first, "#"))
	if !found {
		return title, ""
	}
	return title, rest
}
