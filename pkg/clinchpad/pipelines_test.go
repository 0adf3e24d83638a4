package clinchpad_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/clinchpad/clinchpad-go/internal/crmtest"
	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

func seedPipelines(s *crmtest.Server) {
	s.Pipelines = []clinchpad.Pipeline{
		{ID: "p1", Name: "Sales"},
		{ID: "p2", Name: "Support"},
	}
}

func TestPipelines_CachedAfterFirstFetch(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	c := s.Client()

	first, err := c.Pipelines(context.Background())
	if err != nil {
		t.Fatalf("Pipelines() error = %v", err)
	}
	second, err := c.Pipelines(context.Background())
	if err != nil {
		t.Fatalf("Pipelines() error = %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("Pipelines() lengths = %d, %d, want 2", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Pipelines() call results differ at %d: %v vs %v", i, first[i], second[i])
		}
	}
	if s.PipelineFetches != 1 {
		t.Errorf("pipeline list fetched %d times, want 1", s.PipelineFetches)
	}
}

func TestPipelines_FetchedAtMostOnceUnderConcurrency(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	c := s.Client()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Pipelines(context.Background()); err != nil {
				t.Errorf("Pipelines() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if s.PipelineFetches != 1 {
		t.Errorf("pipeline list fetched %d times, want 1", s.PipelineFetches)
	}
}

func TestPipelineByName(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	c := s.Client()

	p, err := c.PipelineByName(context.Background(), "Sales")
	if err != nil {
		t.Fatalf("PipelineByName() error = %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("PipelineByName() id = %v, want p1", p.ID)
	}

	_, err = c.PipelineByName(context.Background(), "Marketing")
	if !clinchpad.IsNotFound(err) {
		t.Fatalf("PipelineByName() error = %v, want NotFoundError", err)
	}
	var nf *clinchpad.NotFoundError
	if !errors.As(err, &nf) || nf.Name != "Marketing" {
		t.Errorf("NotFoundError does not carry searched name: %v", err)
	}
}

func TestInvalidatePipelines(t *testing.T) {
	s := crmtest.New(t)
	seedPipelines(s)
	c := s.Client()

	if _, err := c.Pipelines(context.Background()); err != nil {
		t.Fatalf("Pipelines() error = %v", err)
	}
	c.InvalidatePipelines()
	if _, err := c.Pipelines(context.Background()); err != nil {
		t.Fatalf("Pipelines() error = %v", err)
	}

	if s.PipelineFetches != 2 {
		t.Errorf("pipeline list fetched %d times after invalidation, want 2", s.PipelineFetches)
	}
}
