package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/xmark/tree"
)

// Tree builds the construction tree of an XML document.
type Tree struct {
	Output `embed:""`

	Fingerprint bool `help:"Print only the structural fingerprint of the tree." short:"F"`

	Source string `arg:"" default:"-" help:"Source XML file or '-' for stdin." name:"source" optional:""`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := loadTree(ctx, t.Source)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if t.Fingerprint {
		_, err = fmt.Fprintf(w, "%016x\n", root.Fingerprint())

		return err
	}

	if t.Format == formatText {
		return tree.Fprint(w, root, treeStyle())
	}

	return t.encode(ctx, w, tree.ToNative(root))
}
