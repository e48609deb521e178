package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/tree"
)

const defaultEditor = "vi"

// document is the source document loaded into the REPL.
type document struct {
	text []byte
	root *tree.Node
}

// loadDocument builds the construction tree of the XML in text.
func loadDocument(
	ctx context.Context,
	text []byte,
	opts ...tree.Option,
) (*document, error) {
	root, err := tree.ParseReader(ctx, bytes.NewReader(text), opts...)
	if err != nil {
		return nil, err
	}

	return &document{text: text, root: root}, nil
}

// editDocumentCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop. It writes the document to a temp file, opens the user's editor, and
// rebuilds the tree from the result. On error the user is prompted to
// re-edit; declining exits the program.
type editDocumentCommand struct {
	doc     *document
	opts    []tree.Option
	ctxFunc func() context.Context
	newDoc  *document
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDocumentCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDocumentCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDocumentCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file cancels the edit
// and leaves newDoc nil. If the user declines to re-edit, it returns
// [ErrEditDeclined].
func (c *editDocumentCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "xmark-repl-*.xml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := c.doc.text

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		doc, buildErr := loadDocument(ctx, data, c.opts...)
		c.logger.TraceContext(ctx, "editor build attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", buildErr == nil),
		)

		if buildErr == nil {
			c.newDoc = doc

			return nil
		}

		fmt.Fprintf(c.stderr, "\nBuild error: %s\n", buildErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = data
	}
}

// runEditor launches $EDITOR, or vi, on the file at path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
