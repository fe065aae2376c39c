package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/solver"
	"svw.info/make24/internal/usecase"
)

type Handler struct {
	UC       *usecase.Service
	validate *validator.Validate
}

func New(uc *usecase.Service) *Handler {
	return &Handler{UC: uc, validate: validator.New()}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/generate", h.handleGenerate)
	r.Post("/api/solve", h.handleSolve)
	r.Post("/api/validate", h.handleValidate)
	r.Route("/api/rounds", func(r chi.Router) {
		r.Get("/", h.handleListRounds)
		r.Post("/", h.handleNewRound)
		r.Get("/{id}", h.handleGetRound)
		r.Post("/{id}/attempts", h.handleSubmit)
		r.Post("/{id}/hint", h.handleHint)
		r.Post("/{id}/reveal", h.handleReveal)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// decode reads an optional JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoundOver):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyExpression), errors.Is(err, domain.ErrInvalidDigits):
		return http.StatusBadRequest
	case errors.Is(err, solver.ErrBudgetExceeded):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func fail(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
}

// ---- Generate ----

type generateReq struct {
	Seed int64 `json:"seed,omitempty"`
}

type generateResp struct {
	Numbers    domain.Digits `json:"numbers"`
	Solution   string        `json:"solution"`
	Seed       int64         `json:"seed"`
	Attempts   int           `json:"attempts"`
	Fallback   bool          `json:"fallback,omitempty"`
	DurationMs int64         `json:"durationMs"`
	Nodes      int           `json:"nodes"`
}

func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if !h.decode(w, r, &req) {
		return
	}
	seed := seedOrNow(req.Seed)
	p, st, err := h.UC.Generate(r.Context(), seed)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Numbers:    p.Digits,
		Solution:   p.Solution,
		Seed:       seed,
		Attempts:   st.Attempts,
		Fallback:   p.Fallback,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve ----

type solveReq struct {
	Numbers []int `json:"numbers" validate:"required,min=1,max=8"`
}

type solveResp struct {
	Solvable   bool     `json:"solvable"`
	Solution   string   `json:"solution,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	DurationMs int64    `json:"durationMs"`
	Nodes      int      `json:"nodes"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if !h.decode(w, r, &req) {
		return
	}
	sol, st, err := h.UC.Solve(r.Context(), req.Numbers)
	if err != nil {
		fail(w, err)
		return
	}
	resp := solveResp{DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
	if sol != nil {
		resp.Solvable = true
		resp.Solution = sol.Expression
		resp.Value = &sol.Value
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Validate ----

type validateReq struct {
	Expression string `json:"expression" validate:"required"`
	Numbers    []int  `json:"numbers" validate:"required,min=1"`
}

type validateResp struct {
	Valid  bool     `json:"valid"`
	Error  string   `json:"error,omitempty"`
	Result *float64 `json:"result,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.UC.Validate(r.Context(), req.Expression, req.Numbers)
	if err != nil {
		var ue *domain.UsageError
		var ee *domain.EvaluationError
		if errors.As(err, &ue) || errors.As(err, &ee) {
			writeJSON(w, http.StatusOK, validateResp{Valid: false, Error: err.Error()})
			return
		}
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResp{Valid: true, Result: &res})
}

// ---- Rounds ----

type roundView struct {
	ID          string             `json:"id"`
	Numbers     domain.Digits      `json:"numbers"`
	Status      domain.RoundStatus `json:"status"`
	Board       []domain.Attempt   `json:"board"`
	Remaining   int                `json:"remaining"`
	MaxAttempts int                `json:"maxAttempts"`
	Solution    string             `json:"solution,omitempty"`
	CreatedAt   int64              `json:"createdAt"`
}

// view hides the witness until the round is over or revealed.
func (h *Handler) view(r *domain.Round) roundView {
	v := roundView{
		ID:          r.ID,
		Numbers:     r.Digits,
		Status:      r.Status,
		Board:       h.UC.Board(r),
		Remaining:   r.Remaining(),
		MaxAttempts: r.MaxAttempts,
		CreatedAt:   r.CreatedAt,
	}
	if r.Revealed || r.Status.Finished() {
		v.Solution = r.Solution
	}
	return v
}

type newRoundReq struct {
	Seed int64 `json:"seed,omitempty"`
}

func (h *Handler) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if !h.decode(w, r, &req) {
		return
	}
	round, err := h.UC.NewRound(r.Context(), seedOrNow(req.Seed))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(round))
}

type listResp struct {
	Rounds []domain.RoundMeta `json:"rounds"`
}

func (h *Handler) handleListRounds(w http.ResponseWriter, r *http.Request) {
	rs, err := h.UC.List(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if rs == nil {
		rs = []domain.RoundMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Rounds: rs})
}

func (h *Handler) handleGetRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.UC.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(round))
}

type submitReq struct {
	Expression string `json:"expression" validate:"required"`
}

type submitResp struct {
	Attempt domain.Attempt `json:"attempt"`
	Round   roundView      `json:"round"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if !h.decode(w, r, &req) {
		return
	}
	a, round, err := h.UC.Submit(r.Context(), chi.URLParam(r, "id"), req.Expression)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResp{Attempt: a, Round: h.view(round)})
}

type hintResp struct {
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	msg, ok, err := h.UC.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Message: msg})
}

type revealResp struct {
	Solution string `json:"solution"`
}

func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	sol, err := h.UC.Reveal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revealResp{Solution: sol})
}
