package console

import (
	"errors"
	"fmt"

	"github.com/koki-develop/go-fzf"

	"github.com/aretw0/writego/pkg/core"
)

// ErrNoSelection is returned by a Picker when the user backs out.
var ErrNoSelection = errors.New("no post selected")

// Picker lets the user choose one post and returns its ID.
type Picker interface {
	Pick(posts []core.PostSummary) (string, error)
}

// FuzzyPicker presents the posts in a fuzzy finder on the terminal.
type FuzzyPicker struct{}

// Pick implements Picker.
func (FuzzyPicker) Pick(posts []core.PostSummary) (string, error) {
	if len(posts) == 0 {
		return "", ErrNoSelection
	}

	f, err := fzf.New(
		fzf.WithPrompt("Delete > "),
		fzf.WithInputPosition(fzf.InputPositionTop),
		fzf.WithLimit(1),
	)
	if err != nil {
		return "", err
	}

	idxs, err := f.Find(posts, func(i int) string {
		return formatPost(posts[i])
	})
	if errors.Is(err, fzf.ErrAbort) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", err
	}
	if len(idxs) == 0 {
		return "", ErrNoSelection
	}
	return posts[idxs[0]].ID, nil
}

func formatPost(p core.PostSummary) string {
	return fmt.Sprintf("%s  %-12s  %s", p.Created.Local().Format("2006-01-02 15:04"), p.ID, p.Title)
}
