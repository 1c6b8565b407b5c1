package docgen

import "github.com/five82/pitchdeck/internal/catalog"

// DocumentRequest is the payload of POST /generate.
type DocumentRequest struct {
	LogoName string
	Logo     []byte
	Text     string
	Style    catalog.StyleID
}

// Document is a successfully generated document body.
type Document struct {
	Data        []byte
	ContentType string
	RequestID   string
}

// DraftRequest mirrors the JSON body of POST /ai/generate-text.
type DraftRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// DraftResponse mirrors the JSON response of POST /ai/generate-text.
// Success is the acceptance indicator: false means the service answered but
// could not produce a usable draft.
type DraftResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

// Health mirrors the payload returned by GET /.
type Health struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// OK reports whether the service described itself as healthy.
func (h Health) OK() bool {
	return h.Status == "ok"
}
