package client

import (
	"context"
	"iter"

	"github.com/scribelabs/scribe-cli/orgdetect"
)

// Document is a Scribe meeting document. Calendar and people enrichment use
// the orgdetect types so documents feed straight into organization detection.
type Document struct {
	ID                  string                   `json:"document_id"`
	Title               string                   `json:"title"`
	WorkspaceID         string                   `json:"workspace_id,omitempty"`
	CreatedAt           string                   `json:"created_at,omitempty"`
	UpdatedAt           string                   `json:"updated_at,omitempty"`
	GoogleCalendarEvent *orgdetect.CalendarEvent `json:"google_calendar_event,omitempty"`
	People              *orgdetect.PeopleData    `json:"people,omitempty"`
}

// Meeting projects the document fields the organization detector inspects.
func (d Document) Meeting() *orgdetect.Meeting {
	return &orgdetect.Meeting{
		Title:               d.Title,
		GoogleCalendarEvent: d.GoogleCalendarEvent,
		People:              d.People,
	}
}

// GetDocumentsRequest is the request body for the get-documents endpoint.
type GetDocumentsRequest struct {
	WorkspaceID string  `json:"workspace_id,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Cursor      *string `json:"cursor,omitempty"`
}

type getDocumentsResponse struct {
	Documents  []Document `json:"docs"`
	NextCursor *string    `json:"next_cursor"`
}

// defaultDocumentPageSize is the page size used when the caller does not
// set one.
const defaultDocumentPageSize = 100

// GetDocuments fetches one page of documents.
func (c *Client) GetDocuments(ctx context.Context, req GetDocumentsRequest) (Page[Document], error) {
	if req.Limit <= 0 {
		req.Limit = defaultDocumentPageSize
	}
	var resp getDocumentsResponse
	if err := c.Post(ctx, "/v2/get-documents", req, &resp); err != nil {
		return Page[Document]{}, err
	}
	return Page[Document]{Items: resp.Documents, NextCursor: resp.NextCursor}, nil
}

// ListDocuments returns a lazy sequence over every document, following
// pagination cursors as the sequence is consumed.
func (c *Client) ListDocuments(ctx context.Context, req GetDocumentsRequest) iter.Seq2[Document, error] {
	return Paginate(func(cursor *string) (Page[Document], error) {
		req.Cursor = cursor
		return c.GetDocuments(ctx, req)
	})
}

// GetDocumentMetadata fetches the full metadata record for one document.
func (c *Client) GetDocumentMetadata(ctx context.Context, documentID string) (*Document, error) {
	var doc Document
	body := map[string]string{"document_id": documentID}
	if err := c.Post(ctx, "/v1/get-document-metadata", body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentRequest carries the mutable document fields. Nil pointers
// leave the server-side value unchanged.
type UpdateDocumentRequest struct {
	DocumentID string  `json:"document_id"`
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpdateDocument updates a document's mutable fields.
func (c *Client) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) error {
	return c.Post(ctx, "/v1/update-document", req, nil)
}

// UpdateDocumentPanelRequest writes generated content into a document panel.
type UpdateDocumentPanelRequest struct {
	DocumentID string `json:"document_id"`
	PanelID    string `json:"panel_id"`
	Content    any    `json:"content"`
}

// UpdateDocumentPanel replaces the content of one document panel.
func (c *Client) UpdateDocumentPanel(ctx context.Context, req UpdateDocumentPanelRequest) error {
	return c.Post(ctx, "/v1/update-document-panel", req, nil)
}
