package hint

import (
	"context"
	"fmt"
	"strings"

	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/validator"
)

// FirstStep implements a minimal Hinter that reveals the first pairwise
// operation of a known solution.
type FirstStep struct{}

func NewFirstStep() *FirstStep { return &FirstStep{} }

// Hint returns the innermost, leftmost operation on two numbers in solution.
func (h *FirstStep) Hint(ctx context.Context, solution string) (string, bool, error) {
	if strings.TrimSpace(solution) == "" {
		return "", false, nil
	}
	root, err := evaluator.Parse(solution)
	if err != nil {
		return "", false, fmt.Errorf("parse solution: %w", err)
	}
	b := firstLeafPair(root)
	if b == nil {
		return "", false, nil
	}
	v, err := b.Eval()
	if err != nil {
		return "", false, err
	}
	msg := fmt.Sprintf("Start with %s %c %s = %s",
		b.L.String(), b.Op, b.R.String(), fmtValue(v))
	return msg, true, nil
}

func firstLeafPair(n evaluator.Node) *evaluator.Binary {
	switch x := n.(type) {
	case *evaluator.Binary:
		if isLeaf(x.L) && isLeaf(x.R) {
			return x
		}
		if b := firstLeafPair(x.L); b != nil {
			return b
		}
		return firstLeafPair(x.R)
	case *evaluator.Unary:
		return firstLeafPair(x.X)
	}
	return nil
}

func isLeaf(n evaluator.Node) bool {
	_, ok := n.(*evaluator.Num)
	return ok
}

func fmtValue(v float64) string {
	return fmt.Sprint(validator.Round10(v))
}
