package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Digits is the ordered digit set of a round. Order matters for display only.
type Digits []int

// Sorted returns a sorted copy, the canonical multiset form.
func (d Digits) Sorted() Digits {
	out := slices.Clone(d)
	slices.Sort(out)
	return out
}

// SameMultiset reports whether d and o hold the same values with the same counts.
func (d Digits) SameMultiset(o []int) bool {
	if len(d) != len(o) {
		return false
	}
	return slices.Equal(d.Sorted(), Digits(o).Sorted())
}

// String joins the digits as "1, 2, 3, 4".
func (d Digits) String() string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Solution is a witness expression and its evaluated value.
type Solution struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
}

// Puzzle is a generated digit set with one known solution.
type Puzzle struct {
	Digits   Digits `json:"numbers"`
	Solution string `json:"solution"`
	Seed     int64  `json:"seed,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Attempt is one submitted expression as shown on the board.
type Attempt struct {
	Expression string        `json:"expression,omitempty"`
	Result     *float64      `json:"result,omitempty"`
	Status     AttemptStatus `json:"status"`
	Error      string        `json:"error,omitempty"`
	At         int64         `json:"at,omitempty"`
}

// Round is a persisted game: a puzzle plus the player's attempts.
type Round struct {
	ID          string      `json:"id"`
	Digits      Digits      `json:"numbers"`
	Solution    string      `json:"solution"`
	Seed        int64       `json:"seed,omitempty"`
	Attempts    []Attempt   `json:"attempts,omitempty"`
	MaxAttempts int         `json:"maxAttempts"`
	Status      RoundStatus `json:"status"`
	Revealed    bool        `json:"revealed,omitempty"`
	CreatedAt   int64       `json:"createdAt"`
}

// Remaining returns how many attempts are left.
func (r *Round) Remaining() int {
	n := r.MaxAttempts - len(r.Attempts)
	if n < 0 {
		return 0
	}
	return n
}

// Meta returns the listing entry for r.
func (r *Round) Meta() RoundMeta {
	return RoundMeta{
		ID:        r.ID,
		Digits:    r.Digits,
		Status:    r.Status,
		Attempts:  len(r.Attempts),
		CreatedAt: r.CreatedAt,
	}
}

// RoundMeta is a lightweight listing entry.
type RoundMeta struct {
	ID        string      `json:"id"`
	Digits    Digits      `json:"numbers"`
	Status    RoundStatus `json:"status"`
	Attempts  int         `json:"attempts"`
	CreatedAt int64       `json:"createdAt"`
}
