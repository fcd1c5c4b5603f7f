package capability

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient talks to the model-serving sidecar that hosts the face,
// liveness, OCR, and classification models. One client implements every
// capability interface; each capability maps to one endpoint taking a small
// JSON body and returning a JSON result.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a client for the model server at baseURL. timeout
// bounds each capability call; a hung model server degrades the affected
// stage instead of blocking the submission.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type compareRequest struct {
	ImageA string `json:"image_a"`
	ImageB string `json:"image_b"`
}

type compareResponse struct {
	Verified bool    `json:"verified"`
	Distance float64 `json:"distance"`
}

func (c *HTTPClient) Compare(ctx context.Context, idImage, selfie []byte) (ComparisonResult, error) {
	var resp compareResponse
	err := c.post(ctx, "/v1/face/compare", compareRequest{
		ImageA: base64.StdEncoding.EncodeToString(idImage),
		ImageB: base64.StdEncoding.EncodeToString(selfie),
	}, &resp)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{Verified: resp.Verified, Distance: resp.Distance}, nil
}

type imageRequest struct {
	Image string `json:"image"`
}

type confidenceResponse struct {
	Confidence float64 `json:"confidence"`
}

func (c *HTTPClient) Confidence(ctx context.Context, image []byte) (float64, error) {
	var resp confidenceResponse
	err := c.post(ctx, "/v1/face/liveness", imageRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	}, &resp)
	if err != nil {
		return 0, err
	}
	return ClampScore(resp.Confidence), nil
}

type extractRequest struct {
	File string `json:"file"`
}

type extractResponse struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Extract(ctx context.Context, file []byte) (string, error) {
	var resp extractResponse
	err := c.post(ctx, "/v1/ocr/extract", extractRequest{
		File: base64.StdEncoding.EncodeToString(file),
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

type classifyRequest struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels,omitempty"`
}

type classifyResponse struct {
	Results []Classification `json:"results"`
}

func (c *HTTPClient) Classify(ctx context.Context, text string, labels []string) ([]Classification, error) {
	var resp classifyResponse
	if err := c.post(ctx, "/v1/text/classify", classifyRequest{Text: text, Labels: labels}, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Results {
		resp.Results[i].Score = ClampScore(resp.Results[i].Score)
	}
	return resp.Results, nil
}

type sentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *HTTPClient) Analyze(ctx context.Context, text string) (Classification, error) {
	var resp sentimentResponse
	if err := c.post(ctx, "/v1/text/sentiment", classifyRequest{Text: text}, &resp); err != nil {
		return Classification{}, err
	}
	return Classification{Label: resp.Label, Score: ClampScore(resp.Score)}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
