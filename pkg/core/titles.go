package core

import (
	"sort"
	"strings"
)

const (
	// shortBodyLimit is the longest body, in characters, used whole as a title.
	shortBodyLimit = 50
	// truncatedTitleLen is how many body characters a truncated title keeps.
	truncatedTitleLen = 47
	ellipsis          = "..."
)

// DisplayTitle derives the title shown for a listed post.
// The post's own title wins; otherwise the body stands in, truncated when
// it is longer than 50 characters.
func DisplayTitle(title, body string) string {
	if title != "" {
		return title
	}

	runes := []rune(body)
	if len(runes) <= shortBodyLimit {
		return collapse(body)
	}
	return collapse(string(runes[:truncatedTitleLen])) + ellipsis
}

func collapse(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", " ")
}

// Summarize converts remote posts to display entries, newest first.
// Posts created at the same instant keep their input order.
func Summarize(posts []RemotePost) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostSummary{
			ID:      p.ID,
			Title:   DisplayTitle(p.Title, p.Body),
			Created: p.Created,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Created.After(out[j].Created)
	})
	return out
}

// NormalizeInstance reduces user input to a bare host name: surrounding
// whitespace, an http(s) scheme and trailing slashes are removed.
func NormalizeInstance(instance string) string {
	instance = strings.TrimSpace(instance)
	instance = strings.TrimPrefix(instance, "https://")
	instance = strings.TrimPrefix(instance, "http://")
	return strings.TrimRight(instance, "/")
}
