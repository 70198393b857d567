package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/interview"
	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/profile"
)

// InterviewRequest is the body of POST /api/interview/generate. Profile is
// optional: when omitted the stored profile is used.
type InterviewRequest struct {
	Question string           `json:"question" validate:"required"`
	Profile  *profile.Profile `json:"profile,omitempty"`
	JobID    string           `json:"job_id,omitempty"`
}

// InterviewResponse is the reply envelope of POST /api/interview/generate.
type InterviewResponse struct {
	Success             bool                    `json:"success"`
	Response            string                  `json:"response,omitempty"`
	JobContext          *profile.JobApplication `json:"job_context,omitempty"`
	RelevantExperiences []string                `json:"relevant_experiences"`
	Error               string                  `json:"error,omitempty"`
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// handleHealth returns server health and the configured generation model.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.client.GetModel(llm.TierStandard),
	})
}

// handleProfile returns the current stored profile.
func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request) {
	p, err := s.store.Load()
	if err != nil {
		logrus.WithError(err).Error("failed to load profile")
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleInterviewGenerate generates an interview answer grounded in the
// candidate's profile.
func (s *Server) handleInterviewGenerate(w http.ResponseWriter, r *http.Request) {
	var req InterviewRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	p := req.Profile
	if p == nil {
		stored, err := s.store.Load()
		if err != nil {
			logrus.WithError(err).Error("failed to load profile")
			s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
		p = stored
	}

	jobContext := interview.FindJobContext(p, req.JobID)
	prompt := interview.BuildPrompt(p, req.Question, jobContext)

	answer, err := s.client.GenerateContent(r.Context(), prompt, llm.TierStandard)
	if err != nil {
		logrus.WithError(err).Error("interview generation failed")
		s.errorResponse(w, http.StatusInternalServerError, "generation failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, InterviewResponse{
		Success:             true,
		Response:            answer,
		JobContext:          jobContext,
		RelevantExperiences: interview.ReferencedExperiences(p, answer),
	})
}
