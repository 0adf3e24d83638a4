// Package crmtest provides an in-process fake of the ClinchPad API for
// exercising the client without a network. The fake serves the same
// resource paths the real service does and records every mutation so
// tests can assert on what the client actually sent.
package crmtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

// Server is a fake ClinchPad API backed by in-memory data. Seed the
// exported data fields before the client under test touches them; the
// recording fields are appended to as requests arrive.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// Seed data.
	Pipelines      []clinchpad.Pipeline
	Stages         map[string][]clinchpad.Stage // keyed by pipeline id
	Leads          map[string][]clinchpad.Lead  // keyed by pipeline id
	Notes          map[string][]clinchpad.Note  // keyed by lead id
	Fields         map[string][]clinchpad.Field // keyed by lead id
	Activities     []clinchpad.Activity
	LeadActivities map[string][]clinchpad.Activity // keyed by lead id
	Users          []clinchpad.User

	// FailNoteDelete maps a note id to the status code its DELETE
	// should fail with.
	FailNoteDelete map[string]int

	// Recorded requests.
	PipelineFetches int
	StageFetches    int
	DeletedNotes    []string
	DeletedFields   []string
	AddedNotes      []string
	LeadUpdates     map[string][]map[string]any // keyed by lead id
	LastFilterType  string
	AuthUser        string
	AuthKey         string
}

// New starts a fake ClinchPad server. It is shut down automatically
// when the test finishes.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		Stages:         map[string][]clinchpad.Stage{},
		Leads:          map[string][]clinchpad.Lead{},
		Notes:          map[string][]clinchpad.Note{},
		Fields:         map[string][]clinchpad.Field{},
		LeadActivities: map[string][]clinchpad.Activity{},
		FailNoteDelete: map[string]int{},
		LeadUpdates:    map[string][]map[string]any{},
	}

	r := chi.NewRouter()
	r.Use(s.recordAuth)

	r.Get("/pipelines", s.listPipelines)
	r.Get("/pipelines/{pipelineID}/stages", s.listStages)
	r.Get("/leads", s.listLeads)
	r.Get("/leads/{leadID}", s.getLead)
	r.Put("/leads/{leadID}", s.updateLead)
	r.Get("/leads/{leadID}/fields", s.listFields)
	r.Delete("/leads/{leadID}/fields/{fieldID}", s.deleteField)
	r.Get("/leads/{leadID}/notes", s.listNotes)
	r.Post("/leads/{leadID}/notes", s.addNote)
	r.Put("/leads/{leadID}/notes/{noteID}", s.updateNote)
	r.Delete("/leads/{leadID}/notes/{noteID}", s.deleteNote)
	r.Get("/activities", s.listActivities)
	r.Get("/leads/{leadID}/activities", s.listLeadActivities)
	r.Get("/users", s.listUsers)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Client returns a clinchpad client pointed at the fake server.
func (s *Server) Client(opts ...clinchpad.Option) *clinchpad.Client {
	opts = append([]clinchpad.Option{clinchpad.WithBaseURL(s.URL)}, opts...)
	return clinchpad.New("test-key", opts...)
}

func (s *Server) recordAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, key, ok := r.BasicAuth(); ok {
			s.mu.Lock()
			s.AuthUser = user
			s.AuthKey = key
			s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listPipelines(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.PipelineFetches++
	pipelines := s.Pipelines
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pipelines)
}

func (s *Server) listStages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.StageFetches++
	stages := s.Stages[chi.URLParam(r, "pipelineID")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stages)
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	leads := s.Leads[r.URL.Query().Get("pipeline_id")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lead, ok := s.findLead(chi.URLParam(r, "leadID"))
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.findLead(leadID)
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	s.LeadUpdates[leadID] = append(s.LeadUpdates[leadID], fields)
	if stageID, ok := fields["stage_id"].(string); ok {
		for _, stages := range s.Stages {
			for i := range stages {
				if stages[i].ID == stageID {
					lead.Stage = &stages[i]
				}
			}
		}
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) listFields(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fields := s.Fields[chi.URLParam(r, "leadID")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) deleteField(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	fieldID := chi.URLParam(r, "fieldID")

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.Fields[leadID][:0]
	for _, f := range s.Fields[leadID] {
		if f.ID == fieldID {
			s.DeletedFields = append(s.DeletedFields, fieldID)
			continue
		}
		kept = append(kept, f)
	}
	s.Fields[leadID] = kept
	writeJSON(w, http.StatusOK, map[string]string{"_id": fieldID})
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	notes := s.Notes[chi.URLParam(r, "leadID")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var body struct {
		Content string `json:"content"`
		UserID  string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	note := clinchpad.Note{
		ID:      fmt.Sprintf("note-%d", len(s.AddedNotes)+1),
		LeadID:  leadID,
		Content: body.Content,
	}
	s.Notes[leadID] = append(s.Notes[leadID], note)
	s.AddedNotes = append(s.AddedNotes, body.Content+"|"+body.UserID)
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	noteID := chi.URLParam(r, "noteID")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Notes[leadID] {
		if s.Notes[leadID][i].ID == noteID {
			s.Notes[leadID][i].Content = body.Content
			writeJSON(w, http.StatusOK, s.Notes[leadID][i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "note not found")
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	noteID := chi.URLParam(r, "noteID")

	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.FailNoteDelete[noteID]; ok {
		writeError(w, code, "delete failed")
		return
	}
	kept := s.Notes[leadID][:0]
	for _, n := range s.Notes[leadID] {
		if n.ID == noteID {
			s.DeletedNotes = append(s.DeletedNotes, noteID)
			continue
		}
		kept = append(kept, n)
	}
	s.Notes[leadID] = kept
	writeJSON(w, http.StatusOK, map[string]string{"_id": noteID})
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastFilterType = r.URL.Query().Get("filter_type")
	writeJSON(w, http.StatusOK, filterByType(s.Activities, s.LastFilterType))
}

func (s *Server) listLeadActivities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastFilterType = r.URL.Query().Get("filter_type")
	activities := s.LeadActivities[chi.URLParam(r, "leadID")]
	writeJSON(w, http.StatusOK, filterByType(activities, s.LastFilterType))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := s.Users
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

// findLead must be called with the lock held.
func (s *Server) findLead(leadID string) (*clinchpad.Lead, bool) {
	for pid := range s.Leads {
		for i := range s.Leads[pid] {
			if s.Leads[pid][i].ID == leadID {
				return &s.Leads[pid][i], true
			}
		}
	}
	return nil, false
}

func filterByType(activities []clinchpad.Activity, filterType string) []clinchpad.Activity {
	if filterType == "" {
		return activities
	}
	want := map[string]struct{}{}
	for _, t := range strings.Split(filterType, ",") {
		want[t] = struct{}{}
	}
	var out []clinchpad.Activity
	for _, a := range activities {
		if _, ok := want[a.Type]; ok {
			out = append(out, a)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		fmt.Fprint(w, "[]")
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
