package clinchpad_test

import (
	"context"
	"testing"

	"github.com/clinchpad/clinchpad-go/internal/crmtest"
	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

func seedLeads(s *crmtest.Server) {
	negotiation := &clinchpad.Stage{ID: "s1", Name: "Negotiation", PipelineID: "p1"}
	closed := &clinchpad.Stage{ID: "s2", Name: "Closed", PipelineID: "p1"}
	s.Leads["p1"] = []clinchpad.Lead{
		{ID: "l1", Name: "Acme", PipelineID: "p1", Stage: negotiation},
		{ID: "l2", Name: "Globex", PipelineID: "p1", Stage: closed},
		{ID: "l3", Name: "Initech", PipelineID: "p1"}, // no stage yet
	}
}

func TestLeads_NoFilterIncludesStagelessLeads(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedLeads(s)
	c := s.Client()

	leads, err := c.Leads(context.Background(), "Sales")
	if err != nil {
		t.Fatalf("Leads() error = %v", err)
	}
	if len(leads) != 3 {
		t.Errorf("Leads() returned %d leads, want 3", len(leads))
	}
}

func TestLeads_StageFilter(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedLeads(s)
	c := s.Client()

	single, err := c.Leads(context.Background(), "Sales", "Negotiation")
	if err != nil {
		t.Fatalf("Leads() error = %v", err)
	}
	multi, err := c.Leads(context.Background(), "Sales", []string{"Negotiation"}...)
	if err != nil {
		t.Fatalf("Leads() error = %v", err)
	}

	// A single name and a one-element list are the same filter.
	if len(single) != 1 || len(multi) != 1 {
		t.Fatalf("Leads() filtered lengths = %d, %d, want 1", len(single), len(multi))
	}
	if single[0].ID != "l1" || multi[0].ID != "l1" {
		t.Errorf("Leads() filtered ids = %v, %v, want l1", single[0].ID, multi[0].ID)
	}

	// The stage-less lead never matches a filter.
	for _, lead := range single {
		if lead.Stage == nil {
			t.Errorf("Leads() with filter returned stage-less lead %v", lead.ID)
		}
	}
}

func TestLeads_UnknownPipeline(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	c := s.Client()

	_, err := c.Leads(context.Background(), "Marketing")
	if !clinchpad.IsNotFound(err) {
		t.Errorf("Leads() error = %v, want NotFoundError", err)
	}
}

func TestLeadByID(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedLeads(s)
	c := s.Client()

	lead, err := c.LeadByID(context.Background(), "l2")
	if err != nil {
		t.Fatalf("LeadByID() error = %v", err)
	}
	if lead.Name != "Globex" {
		t.Errorf("LeadByID() name = %v, want Globex", lead.Name)
	}
}

func TestMoveLead(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedStages(s)
	seedLeads(s)
	c := s.Client()

	moved, err := c.MoveLead(context.Background(), s.Leads["p1"][0], "Sales", "Closed")
	if err != nil {
		t.Fatalf("MoveLead() error = %v", err)
	}
	if moved.Stage == nil || moved.Stage.ID != "s2" {
		t.Fatalf("MoveLead() stage = %+v, want s2", moved.Stage)
	}

	// Exactly one stage resolution and one update, regardless of the
	// lead's current stage.
	if s.StageFetches != 1 {
		t.Errorf("stage list fetched %d times, want 1", s.StageFetches)
	}
	updates := s.LeadUpdates["l1"]
	if len(updates) != 1 {
		t.Fatalf("lead updated %d times, want 1", len(updates))
	}
	if updates[0]["stage_id"] != "s2" {
		t.Errorf("update body = %v, want stage_id s2", updates[0])
	}
}

func TestUpdateLead(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedLeads(s)
	c := s.Client()

	if _, err := c.UpdateLead(context.Background(), "l1", map[string]any{"name": "Acme Corp"}); err != nil {
		t.Fatalf("UpdateLead() error = %v", err)
	}
	updates := s.LeadUpdates["l1"]
	if len(updates) != 1 || updates[0]["name"] != "Acme Corp" {
		t.Errorf("recorded updates = %v, want one partial update", updates)
	}
}

func TestFieldsAndDeleteField(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedLeads(s)
	s.Fields["l1"] = []clinchpad.Field{
		{ID: "f1", Name: "budget", Value: "10000"},
		{ID: "f2", Name: "region", Value: "EMEA"},
	}
	c := s.Client()
	lead := s.Leads["p1"][0]

	fields, err := c.Fields(context.Background(), lead)
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("Fields() returned %d fields, want 2", len(fields))
	}

	if err := c.DeleteField(context.Background(), lead, fields[0]); err != nil {
		t.Fatalf("DeleteField() error = %v", err)
	}
	if len(s.DeletedFields) != 1 || s.DeletedFields[0] != "f1" {
		t.Errorf("deleted fields = %v, want [f1]", s.DeletedFields)
	}
}
