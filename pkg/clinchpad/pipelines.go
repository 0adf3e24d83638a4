package clinchpad

import "context"

// Pipelines returns the account's pipelines. The first call fetches the
// full list and memoizes it for the lifetime of the client; later calls
// return the cached list without a network round trip, so repeated
// lookups within one workflow observe a consistent pipeline set. The
// population step holds a lock, so the underlying fetch happens at most
// once per client even under concurrent first calls.
//
// The cache has no TTL. Use InvalidatePipelines (or a new client) to
// observe pipelines created or renamed after the first fetch.
func (c *Client) Pipelines(ctx context.Context) ([]Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pipelines != nil {
		return c.pipelines, nil
	}

	var pipelines []Pipeline
	if err := c.get(ctx, "pipelines", &pipelines); err != nil {
		return nil, err
	}
	if pipelines == nil {
		// Cache an empty result too; absence of pipelines is an answer.
		pipelines = []Pipeline{}
	}
	c.pipelines = pipelines
	return pipelines, nil
}

// PipelineByName resolves a pipeline by exact, case-sensitive name from
// the cached pipeline list. If several pipelines share the name the
// first in server order wins. Returns a *NotFoundError when no pipeline
// has the name.
func (c *Client) PipelineByName(ctx context.Context, name string) (*Pipeline, error) {
	pipelines, err := c.Pipelines(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pipelines {
		if pipelines[i].Name == name {
			return &pipelines[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "pipeline", Name: name}
}

// InvalidatePipelines clears the cached pipeline list so the next
// Pipelines call fetches a fresh one.
func (c *Client) InvalidatePipelines() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pipelines = nil
}
