package clinchpad

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
)

// NoteMatcher tests a note's content and, on a match, extracts a value
// from it. Notes are used as an ad-hoc key/value store (a derived value
// encoded in free text and recovered later), which is why matching and
// extraction are one operation.
type NoteMatcher[T any] func(content string) (T, bool)

// FindMode selects how FindNote treats multiple matching notes.
type FindMode int

const (
	// FindFirst returns the first match in server order. This mode is
	// read-only: it short-circuits the scan and never deletes anything,
	// even when later duplicates exist.
	FindFirst FindMode = iota

	// FindKeepLast scans every note, deletes all matches except the
	// last in scan order, and returns the last match's value. It exists
	// to self-heal duplicate encodings left behind by earlier races or
	// retried writes.
	FindKeepLast
)

// Notes returns a lead's notes in server order, one bounded page.
func (c *Client) Notes(ctx context.Context, lead Lead) ([]Note, error) {
	query := url.Values{}
	query.Set("size", strconv.Itoa(pageSize))

	var notes []Note
	if err := c.get(ctx, "leads/"+lead.ID+"/notes?"+query.Encode(), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// AddNote creates a note on a lead, authored by the user configured via
// WithNoteAuthor.
func (c *Client) AddNote(ctx context.Context, lead Lead, text string) (*Note, error) {
	body := map[string]any{
		"content": text,
		"user_id": c.noteAuthorID,
	}
	var created Note
	if err := c.post(ctx, "leads/"+lead.ID+"/notes", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateNote replaces a note's content.
func (c *Client) UpdateNote(ctx context.Context, lead Lead, note Note, text string) (*Note, error) {
	var updated Note
	if err := c.put(ctx, "leads/"+lead.ID+"/notes/"+note.ID, map[string]any{"content": text}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteNote removes a note from a lead.
func (c *Client) DeleteNote(ctx context.Context, lead Lead, note Note) error {
	return c.delete(ctx, "leads/"+lead.ID+"/notes/"+note.ID)
}

// FindNote walks a lead's notes in server order applying match, and
// returns the extracted value of the selected match, or ok=false when
// nothing matches.
//
// In FindKeepLast mode, every matching note except the last is deleted
// before returning, so afterwards at most one note on the lead
// satisfies the matcher. The deletions are sequential with no
// transactional wrapping: a failure partway leaves earlier deletions in
// place and surfaces as a *DedupError. A concurrent writer adding a
// matching note between the scan and the deletions is not locked out,
// so the single-match postcondition is best-effort.
func FindNote[T any](ctx context.Context, c *Client, lead Lead, match NoteMatcher[T], mode FindMode) (T, bool, error) {
	var zero T

	notes, err := c.Notes(ctx, lead)
	if err != nil {
		return zero, false, err
	}

	type hit struct {
		note  Note
		value T
	}
	var hits []hit
	for _, note := range notes {
		value, ok := match(note.Content)
		if !ok {
			continue
		}
		if mode == FindFirst {
			return value, true, nil
		}
		hits = append(hits, hit{note: note, value: value})
	}
	if len(hits) == 0 {
		return zero, false, nil
	}

	var deleted []string
	for _, h := range hits[:len(hits)-1] {
		c.logger.Info("deleting duplicate note",
			slog.String("lead_id", lead.ID),
			slog.String("note_id", h.note.ID))
		if err := c.DeleteNote(ctx, lead, h.note); err != nil {
			return zero, false, &DedupError{Deleted: deleted, FailedID: h.note.ID, Err: err}
		}
		deleted = append(deleted, h.note.ID)
	}
	return hits[len(hits)-1].value, true, nil
}
