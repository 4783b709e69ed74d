package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NlpDetector is the contract the core consumes from the external NLP
// entity recogniser (spec §4.5): one call per block, spans measured over
// that block's own text. Any implementation honouring this signature is
// acceptable; the transport is unspecified by spec.md. HTTPNlpDetector is
// this repository's adapter over the wire protocol in spec §6.
type NlpDetector interface {
	Detect(ctx context.Context, blockID, blockType, content string) ([]Detection, error)
}

// nlpRequest/nlpResponse mirror spec §6's NLP detector protocol. The
// protocol's wire shape is a batch (a list of content items plus an options
// map), but the core always sends exactly one item per call, so that a
// detection's position is always local to a single element_ref and no
// global text-to-element reverse index is needed (spec §4.5 rationale).
type nlpRequest struct {
	Items   []nlpRequestItem `json:"items"`
	Options map[string]any   `json:"options,omitempty"`
}

type nlpRequestItem struct {
	Content   string `json:"content"`
	BlockID   string `json:"block_id"`
	BlockType string `json:"block_type"`
}

type nlpResponse struct {
	Success         bool           `json:"success"`
	Detections      []nlpDetection `json:"detections"`
	TotalDetections int            `json:"total_detections"`
	BlocksProcessed int            `json:"blocks_processed"`
	Error           string         `json:"error,omitempty"`
}

type nlpDetection struct {
	Category      string  `json:"category"`
	OriginalValue string  `json:"original_value"`
	Confidence    float64 `json:"confidence"`
	Position      struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"position"`
	Method  string `json:"method"`
	BlockID string `json:"block_id"`
}

// HTTPNlpDetector calls an external NLP detection endpoint over HTTP,
// shaped the same way the teacher's internal/fetcher/client.go and
// model_api_fetcher.go build Hugging Face API calls: an *http.Client with a
// fixed timeout, a JSON request body, and a status-code-to-error mapping.
type HTTPNlpDetector struct {
	Client   *http.Client
	Endpoint string
}

// NewHTTPNlpDetector builds a detector posting to endpoint, with a
// per-request timeout (spec §6 nlp_timeout_ms, §5 "each call has a per-call
// timeout").
func NewHTTPNlpDetector(endpoint string, timeout time.Duration) *HTTPNlpDetector {
	return &HTTPNlpDetector{
		Client:   &http.Client{Timeout: timeout},
		Endpoint: endpoint,
	}
}

// Detect posts a single-item batch for one block and returns its detections.
func (d *HTTPNlpDetector) Detect(ctx context.Context, blockID, blockType, content string) ([]Detection, error) {
	reqBody := nlpRequest{
		Items: []nlpRequestItem{{Content: content, BlockID: blockID, BlockType: blockType}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode nlp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build nlp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlp request to %s: %w", d.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlp endpoint %s returned status %d", d.Endpoint, resp.StatusCode)
	}

	var parsed nlpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode nlp response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("nlp endpoint reported failure: %s", parsed.Error)
	}

	out := make([]Detection, 0, len(parsed.Detections))
	for _, d := range parsed.Detections {
		out = append(out, Detection{
			BlockID:       blockID,
			Category:      d.Category,
			OriginalValue: d.OriginalValue,
			Span:          Span{Start: d.Position.Start, End: d.Position.End},
			Confidence:    d.Confidence,
			Source:        SourceNlp,
			Method:        d.Method,
		})
	}
	return out, nil
}
