package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/profile"
)

// fakeClient returns a canned answer for generation calls.
type fakeClient struct {
	answer string
	err    error
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.answer, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.answer, f.err
}

func (f *fakeClient) GetModel(_ llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                    { return nil }

func newTestServer(t *testing.T, client *fakeClient) (*Server, *profile.Store) {
	t.Helper()
	store := profile.NewStore(filepath.Join(t.TempDir(), "profile.json"))
	return New(Config{Port: 0}, client, store), store
}

func storedProfile(t *testing.T, store *profile.Store) {
	t.Helper()
	p := profile.NewEmptyProfile()
	p.PersonalInfo["name"] = "Jane Doe"
	p.WorkExperience = []profile.WorkExperience{
		{ID: "w1", Company: "Acme Corp", Role: "Software Engineer", StartDate: "2021-03"},
	}
	p.JobApplications = []profile.JobApplication{
		{ID: "job-1", Company: "Initech", Position: "Backend Engineer"},
	}
	require.NoError(t, store.Save(p))
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fake-model", body["model"])
}

func TestHandleProfile(t *testing.T) {
	srv, store := newTestServer(t, &fakeClient{})
	storedProfile(t, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Jane Doe", p.PersonalInfo["name"])
	require.Len(t, p.WorkExperience, 1)
}

func TestHandleProfileEmptyStore(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Empty(t, p.WorkExperience)
}

func postInterview(t *testing.T, srv *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/interview/generate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleInterviewGenerateUsesStoredProfile(t *testing.T) {
	srv, store := newTestServer(t, &fakeClient{answer: "At Acme Corp I led the pipeline rebuild."})
	storedProfile(t, store)

	rec := postInterview(t, srv, map[string]any{
		"question": "Tell me about a challenge.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp InterviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "At Acme Corp I led the pipeline rebuild.", resp.Response)
	assert.Equal(t, []string{"Software Engineer at Acme Corp"}, resp.RelevantExperiences)
	assert.Nil(t, resp.JobContext)
}

func TestHandleInterviewGenerateWithJobContext(t *testing.T) {
	srv, store := newTestServer(t, &fakeClient{answer: "I want to build backends at Initech."})
	storedProfile(t, store)

	rec := postInterview(t, srv, map[string]any{
		"question": "Why this role?",
		"job_id":   "job-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp InterviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.JobContext)
	assert.Equal(t, "Initech", resp.JobContext.Company)
	assert.Equal(t, "Backend Engineer", resp.JobContext.Position)
}

func TestHandleInterviewGenerateInlineProfile(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{answer: "As a data analyst at Globex I automated reporting."})

	inline := profile.NewEmptyProfile()
	inline.PersonalInfo["name"] = "Sam Lee"
	inline.WorkExperience = []profile.WorkExperience{
		{Company: "Globex", Role: "Data Analyst"},
	}

	rec := postInterview(t, srv, map[string]any{
		"question": "Tell me about yourself.",
		"profile":  inline,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp InterviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Data Analyst at Globex"}, resp.RelevantExperiences)
}

func TestHandleInterviewGenerateMissingQuestion(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{answer: "irrelevant"})

	rec := postInterview(t, srv, map[string]any{"job_id": "job-1"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestHandleInterviewGenerateInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/interview/generate", bytes.NewReader([]byte("{nope")))
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInterviewGenerateModelFailure(t *testing.T) {
	srv, store := newTestServer(t, &fakeClient{err: assert.AnError})
	storedProfile(t, store)

	rec := postInterview(t, srv, map[string]any{"question": "Tell me about yourself."})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &fakeClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/interview/generate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
