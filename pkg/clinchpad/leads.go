package clinchpad

import (
	"context"
	"net/url"
	"strconv"
)

// Leads returns the leads in the named pipeline, one bounded page.
// With no stage names every lead is returned, including leads that have
// no stage yet. With one or more stage names, only leads whose stage is
// set and whose stage name is among them are returned; stage-less leads
// never match a filter.
func (c *Client) Leads(ctx context.Context, pipelineName string, stageNames ...string) ([]Lead, error) {
	pipeline, err := c.PipelineByName(ctx, pipelineName)
	if err != nil {
		return nil, err
	}

	// The single place a continuation token would be added if paging
	// beyond the bounded page is ever supported.
	query := url.Values{}
	query.Set("size", strconv.Itoa(pageSize))
	query.Set("pipeline_id", pipeline.ID)

	var leads []Lead
	if err := c.get(ctx, "leads?"+query.Encode(), &leads); err != nil {
		return nil, err
	}
	if len(stageNames) == 0 {
		return leads, nil
	}

	want := make(map[string]struct{}, len(stageNames))
	for _, name := range stageNames {
		want[name] = struct{}{}
	}
	var filtered []Lead
	for _, lead := range leads {
		if lead.Stage == nil {
			continue
		}
		if _, ok := want[lead.Stage.Name]; ok {
			filtered = append(filtered, lead)
		}
	}
	return filtered, nil
}

// LeadByID fetches a single lead.
func (c *Client) LeadByID(ctx context.Context, leadID string) (*Lead, error) {
	var lead Lead
	if err := c.get(ctx, "leads/"+leadID, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead applies a partial update to a lead. The server merges the
// given fields into the lead; nothing is validated locally.
func (c *Client) UpdateLead(ctx context.Context, leadID string, fields map[string]any) (*Lead, error) {
	var updated Lead
	if err := c.put(ctx, "leads/"+leadID, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MoveLead moves a lead to the named stage of the named pipeline. It
// performs exactly one stage resolution followed by one lead update.
func (c *Client) MoveLead(ctx context.Context, lead Lead, pipelineName, stageName string) (*Lead, error) {
	stage, err := c.StageByName(ctx, pipelineName, stageName)
	if err != nil {
		return nil, err
	}
	return c.UpdateLead(ctx, lead.ID, map[string]any{"stage_id": stage.ID})
}

// Fields returns a lead's custom fields.
func (c *Client) Fields(ctx context.Context, lead Lead) ([]Field, error) {
	var fields []Field
	if err := c.get(ctx, "leads/"+lead.ID+"/fields", &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// DeleteField removes a custom field from a lead.
func (c *Client) DeleteField(ctx context.Context, lead Lead, field Field) error {
	return c.delete(ctx, "leads/"+lead.ID+"/fields/"+field.ID)
}
