package client

import (
	"context"
	"fmt"
	"net/http"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// Operation describes one API endpoint reachable through Call.
type Operation struct {
	Method string
	Path   string
}

// operations maps canonical operation names to endpoints. All data endpoints
// are POST with a JSON body; the update feed is the lone GET.
var operations = map[string]Operation{
	"get-workspaces":         {Method: http.MethodPost, Path: "/v1/get-workspaces"},
	"get-documents":          {Method: http.MethodPost, Path: "/v2/get-documents"},
	"get-document-metadata":  {Method: http.MethodPost, Path: "/v1/get-document-metadata"},
	"get-document-transcript": {Method: http.MethodPost, Path: "/v1/get-document-transcript"},
	"update-document":        {Method: http.MethodPost, Path: "/v1/update-document"},
	"update-document-panel":  {Method: http.MethodPost, Path: "/v1/update-document-panel"},
	"get-panel-templates":    {Method: http.MethodPost, Path: "/v1/get-panel-templates"},
	"get-people":             {Method: http.MethodPost, Path: "/v1/get-people"},
	"get-feature-flags":      {Method: http.MethodPost, Path: "/v1/get-feature-flags"},
	"get-notion-integration": {Method: http.MethodPost, Path: "/v1/get-notion-integration"},
	"get-subscriptions":      {Method: http.MethodPost, Path: "/v1/get-subscriptions"},
	"refresh-google-events":  {Method: http.MethodPost, Path: "/v1/refresh-google-events"},
	"check-for-update":       {Method: http.MethodGet, Path: "/v1/check-for-update/latest-mac.yml"},
}

// legacyAliases maps method names from older SDK releases to their canonical
// operation names. The table form keeps the mapping statically inspectable;
// there is deliberately no dynamic fallback.
var legacyAliases = map[string]string{
	"getWorkspaces":            "get-workspaces",
	"getDocuments":             "get-documents",
	"getDocumentMetadata":      "get-document-metadata",
	"getTranscript":            "get-document-transcript",
	"getDocumentTranscript":    "get-document-transcript",
	"updateDocument":           "update-document",
	"updateDocumentPanel":      "update-document-panel",
	"getPanelTemplates":        "get-panel-templates",
	"getPeople":                "get-people",
	"getFeatureFlags":          "get-feature-flags",
	"getNotionIntegration":     "get-notion-integration",
	"getSubscriptions":         "get-subscriptions",
	"refreshGoogleEvents":      "refresh-google-events",
	"checkForUpdate":           "check-for-update",
}

// ResolveOperation resolves a canonical operation name or a legacy alias to
// its endpoint. Unknown names return ErrUnknownOperation.
func ResolveOperation(name string) (Operation, error) {
	if canonical, ok := legacyAliases[name]; ok {
		name = canonical
	}
	op, ok := operations[name]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", scerrors.ErrUnknownOperation, name)
	}
	return op, nil
}

// Call dispatches a request by operation name (canonical or legacy alias).
// The typed per-endpoint methods are preferred; Call exists for callers that
// carry operation names as data.
func (c *Client) Call(ctx context.Context, name string, params, out any) error {
	op, err := ResolveOperation(name)
	if err != nil {
		return err
	}
	if op.Method == http.MethodGet {
		return c.Get(ctx, op.Path, out)
	}
	return c.Post(ctx, op.Path, params, out)
}
