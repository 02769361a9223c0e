package classify

import (
	"context"

	"medmatch/internal/blocking"
	"medmatch/internal/record"
)

// Label is an oracle's verdict on a candidate pair.
type Label int

const (
	// LabelSkip means the oracle declined to judge the pair; it does not
	// count against the label budget's confirmed examples.
	LabelSkip Label = iota
	// LabelDistinct confirms the pair refers to different people.
	LabelDistinct
	// LabelMatch confirms the pair refers to the same person.
	LabelMatch
)

// Query presents a candidate pair to the oracle with both canonical records
// so a human (or scripted) labeler can judge it.
type Query struct {
	Pair  blocking.Pair
	Left  record.Canonical
	Right record.Canonical
}

// Oracle is the external labeling collaborator for active learning. Label
// blocks until every query in the batch is answered; the returned slice is
// index-aligned with queries. The training loop is inherently sequential and
// interactive, so implementations may block on human input.
type Oracle interface {
	Label(ctx context.Context, queries []Query) ([]Label, error)
}
