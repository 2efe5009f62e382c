package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/middleware"
	"pricecheck-service/internal/pricecheck/model"
	"pricecheck-service/internal/pricecheck/service"
)

// Backend is the part of service.Service the handlers drive.
type Backend interface {
	Categories(ctx context.Context) ([]string, error)
	Filter(ctx context.Context, req model.FilterRequest) ([]model.SimilarityPair, error)
	CheckHistory(ctx context.Context, name string) (model.CheckResult, error)
	PairDetails(ctx context.Context, item string) ([]model.PairDetail, error)
	PurchaseHistory(ctx context.Context, item string, includeSimilar bool) (*fileio.Table, error)
}

const (
	msgNoFilterMatch  = "no pairs match the selected filter"
	msgNoFilterYet    = "choose a score and categories and run the filter"
	msgShowAll        = "showing every pair may be slow when there are thousands"
	msgNoCheckYet     = "enter an item name and run the history check"
	msgNoPairs        = "no similar pairs found in the similarity database"
	msgNoHistory      = "no matching purchase history in the SJ data"
	msgUniqueItemTmpl = "no items similar to %q (above 50%%); this item is most likely unique"
)

type Handler struct {
	svc      Backend
	sessions *Sessions
	log      zerolog.Logger
}

func New(svc Backend, sessions *Sessions, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, log: logger.With().Str("component", "handler").Logger()}
}

// reqLog binds the request id set by middleware.RequestID.
func (h *Handler) reqLog(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return h.log.With().Str("req_id", rid).Logger()
	}
	return h.log
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r)
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoriesResponse{Categories: cats})
}

// FilterResponse is a view over the session's filter result.
type FilterResponse struct {
	Request   *model.FilterRequest `json:"request,omitempty"`
	View      model.FilterView     `json:"view"`
	Total     int                  `json:"total"`
	Shown     int                  `json:"shown"`
	Pairs     []PairView           `json:"pairs"`
	Message   string               `json:"message,omitempty"`
	Warning   string               `json:"warning,omitempty"`
	SessionID string               `json:"sessionId"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("%w: bad request body: %v", model.ErrPreconditionNotMet, err)
	}
	return nil
}

// RunFilter runs the score/category filter and stores the result in the session.
// The body is JSON {"score","categories"}; query parameters are accepted as a fallback.
func (h *Handler) RunFilter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.reqLog(r)
	id, sess := h.sessions.Acquire(w, r)

	view, err := parseView(r)
	if err != nil {
		writeError(w, log, err)
		return
	}
	var req model.FilterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, log, err)
		return
	}
	q := r.URL.Query()
	if req.Score == "" {
		req.Score = model.ScoreThreshold(q.Get("score"))
	}
	if len(req.Categories) == 0 {
		req.Categories = q["categories"]
	}
	req.Categories = cleanValues(req.Categories)

	pairs, err := h.svc.Filter(r.Context(), req)
	if err != nil {
		if len(req.Categories) == 0 {
			// an empty selection replaces the shown result with nothing
			sess.SetFilter(&FilterState{Request: req, Pairs: []model.SimilarityPair{}})
		}
		writeError(w, log, err)
		return
	}
	sess.SetFilter(&FilterState{Request: req, Pairs: pairs})
	log.Info().
		Str("session", id).
		Str("score", string(req.Score)).
		Int("matched", len(pairs)).
		Dur("elapsed", time.Since(start)).
		Msg("filter stored")
	writeJSON(w, log, http.StatusOK, h.filterView(id, sess, view))
}

// ViewFilter shows the session's last filter result with the requested limit and order.
func (h *Handler) ViewFilter(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r)
	id, sess := h.sessions.Acquire(w, r)
	view, err := parseView(r)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, h.filterView(id, sess, view))
}

func (h *Handler) filterView(id string, sess *Session, view model.FilterView) FilterResponse {
	resp := FilterResponse{View: view, Pairs: []PairView{}, SessionID: id}
	st := sess.Filter()
	if st == nil {
		resp.Message = msgNoFilterYet
		return resp
	}
	req := st.Request
	resp.Request = &req
	resp.Total = len(st.Pairs)
	if resp.Total == 0 {
		resp.Message = msgNoFilterMatch
		return resp
	}
	shown := service.ApplyView(st.Pairs, view)
	resp.Shown = len(shown)
	resp.Pairs = pairViews(shown)
	if view.Limit == 0 {
		resp.Warning = msgShowAll
	}
	return resp
}

type checkRequest struct {
	Name string `json:"name"`
}

// CheckResponse is the history-check result of a session.
type CheckResponse struct {
	Query     string      `json:"query"`
	Matches   []MatchView `json:"matches"`
	Message   string      `json:"message,omitempty"`
	SessionID string      `json:"sessionId"`
}

// RunCheck checks a new item name against the SJ history and stores the result in the session.
func (h *Handler) RunCheck(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r)
	id, sess := h.sessions.Acquire(w, r)

	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, log, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = r.URL.Query().Get("name")
	}

	res, err := h.svc.CheckHistory(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, model.ErrSourceUnavailable) || errors.Is(err, model.ErrSchemaMismatch) {
			sess.SetCheck(nil)
		}
		writeError(w, log, err)
		return
	}
	sess.SetCheck(&res)
	writeJSON(w, log, http.StatusOK, checkView(id, &res))
}

// ViewCheck shows the session's last history-check result.
func (h *Handler) ViewCheck(w http.ResponseWriter, r *http.Request) {
	id, sess := h.sessions.Acquire(w, r)
	writeJSON(w, h.reqLog(r), http.StatusOK, checkView(id, sess.Check()))
}

func checkView(id string, res *model.CheckResult) CheckResponse {
	resp := CheckResponse{Matches: []MatchView{}, SessionID: id}
	if res == nil {
		resp.Message = msgNoCheckYet
		return resp
	}
	resp.Query = res.Query
	if len(res.Matches) == 0 {
		resp.Message = fmt.Sprintf(msgUniqueItemTmpl, res.Query)
		return resp
	}
	resp.Matches = matchViews(res.Matches)
	return resp
}

type pairsResponse struct {
	Item    string           `json:"item"`
	Pairs   []PairDetailView `json:"pairs"`
	Message string           `json:"message,omitempty"`
}

func (h *Handler) DetailPairs(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r)
	item := r.URL.Query().Get("item")
	details, err := h.svc.PairDetails(r.Context(), item)
	if err != nil {
		writeError(w, log, err)
		return
	}
	resp := pairsResponse{Item: item, Pairs: detailViews(details)}
	if len(details) == 0 {
		resp.Message = msgNoPairs
	}
	writeJSON(w, log, http.StatusOK, resp)
}

type historyResponse struct {
	Item           string       `json:"item"`
	IncludeSimilar bool         `json:"includeSimilar"`
	Columns        []string     `json:"columns"`
	Total          int          `json:"total"`
	Rows           []HistoryRow `json:"rows"`
	Message        string       `json:"message,omitempty"`
}

func (h *Handler) DetailHistory(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r)
	q := r.URL.Query()
	item := q.Get("item")
	includeSimilar := toBool(q.Get("include_similar"), false)

	tbl, err := h.svc.PurchaseHistory(r.Context(), item, includeSimilar)
	if err != nil {
		writeError(w, log, err)
		return
	}
	resp := historyResponse{
		Item:           item,
		IncludeSimilar: includeSimilar,
		Columns:        tbl.Columns,
		Total:          tbl.Len(),
		Rows:           historyRows(tbl),
	}
	if tbl.Empty() {
		resp.Message = msgNoHistory
	}
	writeJSON(w, log, http.StatusOK, resp)
}
