package clinchpad_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clinchpad/clinchpad-go/internal/crmtest"
	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

func seedStages(s *crmtest.Server) {
	s.Stages["p1"] = []clinchpad.Stage{
		{ID: "s1", Name: "Negotiation", PipelineID: "p1"},
		{ID: "s2", Name: "Closed", PipelineID: "p1"},
	}
}

func TestStageByName(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedStages(s)
	c := s.Client()

	stage, err := c.StageByName(context.Background(), "Sales", "Closed")
	if err != nil {
		t.Fatalf("StageByName() error = %v", err)
	}
	if stage.ID != "s2" {
		t.Errorf("StageByName() id = %v, want s2", stage.ID)
	}
}

func TestStageByName_NotFoundNamesBoth(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedStages(s)
	c := s.Client()

	_, err := c.StageByName(context.Background(), "Sales", "Unknown")
	var nf *clinchpad.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("StageByName() error = %v, want NotFoundError", err)
	}
	if nf.Name != "Unknown" || nf.Pipeline != "Sales" {
		t.Errorf("NotFoundError = %+v, want stage and pipeline names", nf)
	}
	if !strings.Contains(err.Error(), "Unknown") || !strings.Contains(err.Error(), "Sales") {
		t.Errorf("error message %q should name both stage and pipeline", err)
	}
}

func TestStages_FreshFetchEveryCall(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	seedStages(s)
	c := s.Client()

	for i := 0; i < 3; i++ {
		if _, err := c.StageByName(context.Background(), "Sales", "Closed"); err != nil {
			t.Fatalf("StageByName() error = %v", err)
		}
	}

	// The pipeline set is cached but stage lists are re-read each time.
	if s.StageFetches != 3 {
		t.Errorf("stage list fetched %d times, want 3", s.StageFetches)
	}
	if s.PipelineFetches != 1 {
		t.Errorf("pipeline list fetched %d times, want 1", s.PipelineFetches)
	}
}
