package clinchpad

import "context"

// Stages returns the stage list of the named pipeline. Stage lists are
// never cached: stages are edited far more often than the pipeline set,
// so every call fetches fresh data even though the pipeline identity
// itself comes from the cache.
func (c *Client) Stages(ctx context.Context, pipelineName string) ([]Stage, error) {
	pipeline, err := c.PipelineByName(ctx, pipelineName)
	if err != nil {
		return nil, err
	}
	var stages []Stage
	if err := c.get(ctx, "pipelines/"+pipeline.ID+"/stages", &stages); err != nil {
		return nil, err
	}
	return stages, nil
}

// StageByName resolves a stage by exact name within the named pipeline.
// Returns a *NotFoundError naming both the pipeline and the stage when
// no stage matches.
func (c *Client) StageByName(ctx context.Context, pipelineName, stageName string) (*Stage, error) {
	stages, err := c.Stages(ctx, pipelineName)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		if stages[i].Name == stageName {
			return &stages[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "stage", Name: stageName, Pipeline: pipelineName}
}
