package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"medmatch/internal/classify"
	"medmatch/internal/record"
)

// consoleOracle answers labeling queries by prompting a human on the
// terminal. It implements classify.Oracle.
type consoleOracle struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsoleOracle(in io.Reader, out io.Writer) *consoleOracle {
	return &consoleOracle{in: bufio.NewReader(in), out: out}
}

// Label presents each candidate pair side by side and reads a verdict.
func (o *consoleOracle) Label(ctx context.Context, queries []classify.Query) ([]classify.Label, error) {
	labels := make([]classify.Label, len(queries))
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(o.out, "\nPair %d of %d\n%s\n", i+1, len(queries), renderQuery(query))

		label, err := o.prompt(ctx)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

func (o *consoleOracle) prompt(ctx context.Context) (classify.Label, error) {
	for {
		if err := ctx.Err(); err != nil {
			return classify.LabelSkip, err
		}
		fmt.Fprint(o.out, "Same patient? [y]es / [n]o / [u]nsure: ")
		line, err := o.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return classify.LabelSkip, fmt.Errorf("labeling input closed")
			}
			return classify.LabelSkip, fmt.Errorf("read label: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return classify.LabelMatch, nil
		case "n", "no":
			return classify.LabelDistinct, nil
		case "u", "unsure", "s", "skip":
			return classify.LabelSkip, nil
		}
		fmt.Fprintln(o.out, "Please answer y, n, or u.")
	}
}

func renderQuery(query classify.Query) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"field", query.Left.ID, query.Right.ID})
	for _, field := range record.Fields() {
		tw.AppendRow(table.Row{field, orDash(query.Left.Field(field)), orDash(query.Right.Field(field))})
	}
	return tw.Render()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
