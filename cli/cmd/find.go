package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/xmark/tree"
)

// Find fuzzy-matches a pattern against node labels ("Type" or "Type#Key").
type Find struct {
	Output `embed:""`

	Limit int `default:"0" help:"Maximum number of matches to print; 0 prints all." short:"n"`

	Pattern string `arg:"" help:"Fuzzy pattern."                        name:"pattern"`
	Source  string `arg:"" help:"Source XML file or '-' for stdin." name:"source"  default:"-" optional:""`
}

type findResult struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path"  yaml:"path"`
	Score int    `json:"score" yaml:"score"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := loadTree(ctx, f.Source)
	if err != nil {
		return err
	}

	matches := tree.Find(root, f.Pattern)
	if f.Limit > 0 && len(matches) > f.Limit {
		matches = matches[:f.Limit]
	}

	w := outputFrom(ctx)

	if f.Format == formatText {
		for _, m := range matches {
			_, err := fmt.Fprintf(w, "%s %s\n",
				highlight(m.Label, m.MatchedIndexes), pathStyle.Render(m.Path))
			if err != nil {
				return err
			}
		}

		return nil
	}

	results := make([]findResult, len(matches))
	for i, m := range matches {
		results[i] = findResult{Label: m.Label, Path: m.Path, Score: m.Score}
	}

	return f.encode(ctx, w, results)
}

// highlight renders the runes of label at the matched byte offsets with
// matchStyle.
func highlight(label string, matched []int) string {
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder

	for i, r := range label {
		if set[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
