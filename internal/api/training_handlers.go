package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/logger"
)

type answerRequest struct {
	ProgressID int64  `json:"progress_id"`
	Answer     string `json:"answer"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	start, err := s.TrainingService.StartSession(r.Context(), learner.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, start)
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	queue, err := s.TrainingService.Queue(r.Context(), learner.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, queue)
}

// handleAnswer grades one answer. Without an {id} route parameter the
// answer is not counted against any session.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	learner := learnerFromContext(r.Context())

	var sessionID int64
	if chi.URLParam(r, "id") != "" {
		id, err := idParam(r, "id")
		if err != nil {
			handleError(w, r, err)
			return
		}
		sessionID = id
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.ProgressID <= 0 {
		handleError(w, r, errors.NewValidationError("progress_id", "must be positive"))
		return
	}

	outcome, err := s.TrainingService.SubmitAnswer(r.Context(), learner.ID, sessionID, req.ProgressID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("answer handled: progress_id=%d, correct=%t", req.ProgressID, outcome.Correct)
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.TrainingService.EndSession(r.Context(), learner.ID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}
