package validator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/ports"
)

var numberRun = regexp.MustCompile(`\d+`)

// SubmissionValidator checks that an expression uses the round's digits
// exactly once and evaluates it.
type SubmissionValidator struct {
	Eval      ports.Evaluator
	Target    float64
	Tolerance float64
}

// New returns a validator for target 24 with a 1e-9 snapping tolerance.
func New(eval ports.Evaluator) *SubmissionValidator {
	if eval == nil {
		eval = evaluator.New()
	}
	return &SubmissionValidator{Eval: eval, Target: 24, Tolerance: 1e-9}
}

// Validate returns the expression's value, snapped to the target when within
// Tolerance and otherwise rounded to 10 significant digits. Errors are
// *domain.UsageError or *domain.EvaluationError.
func (v *SubmissionValidator) Validate(expr string, digits domain.Digits) (float64, error) {
	used := UsedNumbers(expr)
	if !digits.SameMultiset(used) {
		return 0, &domain.UsageError{Expected: digits, Used: used}
	}

	res, err := v.Eval.Evaluate(expr)
	if err != nil {
		return 0, evaluationError(err)
	}
	if math.Abs(res-v.Target) < v.Tolerance {
		return v.Target, nil
	}
	return Round10(res), nil
}

// UsedNumbers extracts every maximal run of digits as a number, in order.
// "12" counts as twelve, not as a one and a two.
func UsedNumbers(expr string) domain.Digits {
	runs := numberRun.FindAllString(expr, -1)
	out := make(domain.Digits, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil {
			n = math.MaxInt // absurdly long runs can never match a digit
		}
		out = append(out, n)
	}
	return out
}

// Round10 rounds f to 10 significant digits.
func Round10(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 10, 64), 64)
	if err != nil {
		return f
	}
	return r
}

func evaluationError(err error) *domain.EvaluationError {
	if errors.Is(err, evaluator.ErrDivisionByZero) {
		return &domain.EvaluationError{Msg: "Division by zero is not allowed.", Err: err}
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return &domain.EvaluationError{Msg: "Syntax Error: " + msg, Err: err}
}
