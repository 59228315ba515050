package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/handcricket/internal/store"
)

// MatchesHandler serves the session's match history.
//
//	GET /api/matches       all matches, newest first, with a result tally
//	GET /api/matches/{id}  one match with its deliveries
type MatchesHandler struct {
	store *store.Store
}

// NewMatchesHandler creates a new MatchesHandler with the given store.
func NewMatchesHandler(s *store.Store) *MatchesHandler {
	return &MatchesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *MatchesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/matches")
	id = strings.Trim(id, "/")

	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, id)
}

type deliveryResponse struct {
	Sequence     int  `json:"sequence"`
	Inning       int  `json:"inning"`
	UserBatting  bool `json:"user_batting"`
	UserMove     int  `json:"user_move"`
	ComputerMove int  `json:"computer_move"`
	Out          bool `json:"out"`
	Runs         int  `json:"runs"`
}

type matchResponse struct {
	ID            string             `json:"id"`
	TossCall      int                `json:"toss_call"`
	TossRoll      int                `json:"toss_roll"`
	UserWonToss   bool               `json:"user_won_toss"`
	UserBatsFirst bool               `json:"user_bats_first"`
	UserScore     int                `json:"user_score"`
	ComputerScore int                `json:"computer_score"`
	Target        int                `json:"target"`
	Result        string             `json:"result"`
	StartedAt     string             `json:"started_at"`
	FinishedAt    string             `json:"finished_at,omitempty"`
	Deliveries    []deliveryResponse `json:"deliveries,omitempty"`
}

type listMatchesResponse struct {
	Matches []matchResponse `json:"matches"`
	Tally   map[string]int  `json:"tally"`
}

func toMatchResponse(m *store.Match) matchResponse {
	resp := matchResponse{
		ID:            m.ID,
		TossCall:      m.TossCall,
		TossRoll:      m.TossRoll,
		UserWonToss:   m.UserWonToss,
		UserBatsFirst: m.UserBatsFirst,
		UserScore:     m.UserScore,
		ComputerScore: m.ComputerScore,
		Target:        m.Target,
		Result:        m.Result,
		StartedAt:     formatTime(m.StartedAt),
	}
	if m.FinishedAt != nil {
		resp.FinishedAt = formatTime(*m.FinishedAt)
	}
	return resp
}

func (h *MatchesHandler) list(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.Matches().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	tally, err := h.store.Matches().Tally()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to tally matches")
		return
	}

	response := listMatchesResponse{
		Matches: make([]matchResponse, 0, len(matches)),
		Tally:   tally,
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, toMatchResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *MatchesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := h.store.Matches().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get match")
		return
	}

	deliveries, err := h.store.Deliveries().ListByMatch(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list deliveries")
		return
	}

	resp := toMatchResponse(m)
	resp.Deliveries = make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		resp.Deliveries = append(resp.Deliveries, deliveryResponse{
			Sequence:     d.Sequence,
			Inning:       d.Inning,
			UserBatting:  d.UserBatting,
			UserMove:     d.UserMove,
			ComputerMove: d.ComputerMove,
			Out:          d.Out,
			Runs:         d.Runs,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
