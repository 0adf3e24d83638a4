package clinchpad

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the format of ActivityQuery date bounds.
const dateLayout = "2006-01-02"

// ActivityQuery selects and filters activities. Every field is
// optional; set fields compose with AND.
type ActivityQuery struct {
	// Pipeline keeps only activities belonging to this pipeline
	// (applied client-side after the fetch).
	Pipeline *Pipeline

	// Lead switches the fetch from the global activity feed to the
	// lead's own activity list.
	Lead *Lead

	// Types is passed to the server as a comma-joined filter_type
	// parameter, so type filtering happens server-side.
	Types []string

	// Start and End are inclusive YYYY-MM-DD date bounds. Both bounds
	// and every activity timestamp are normalized to UTC before
	// comparing, so results do not depend on the server's reported
	// offset or the local zone. Start covers from 00:00:00, End through
	// the end of its day.
	Start string
	End   string
}

// Activities fetches activities (one bounded page) and applies the
// query's filters.
func (c *Client) Activities(ctx context.Context, q ActivityQuery) ([]Activity, error) {
	var start, end time.Time
	var err error
	if q.Start != "" {
		start, err = time.ParseInLocation(dateLayout, q.Start, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
	}
	if q.End != "" {
		day, err := time.ParseInLocation(dateLayout, q.End, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse end date: %w", err)
		}
		end = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	query := url.Values{}
	query.Set("size", strconv.Itoa(pageSize))
	if len(q.Types) > 0 {
		query.Set("filter_type", strings.Join(q.Types, ","))
	}
	path := "activities"
	if q.Lead != nil {
		path = "leads/" + q.Lead.ID + "/activities"
	}

	var activities []Activity
	if err := c.get(ctx, path+"?"+query.Encode(), &activities); err != nil {
		return nil, err
	}

	var filtered []Activity
	for _, activity := range activities {
		if q.Pipeline != nil && activity.PipelineID != q.Pipeline.ID {
			continue
		}
		ts := activity.CreatedAt.UTC()
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		filtered = append(filtered, activity)
	}
	return filtered, nil
}
