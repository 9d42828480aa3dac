package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClassifier talks to the recognition service: one frame in, one
// candidate symbol with a confidence out. Word recognition accumulates
// frames server-side keyed by the sequence id.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(baseURL string) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, frame Frame) (Detection, error) {
	payload := struct {
		Image      string `json:"image"`
		SequenceId string `json:"sequenceId,omitempty"`
	}{
		Image:      base64.StdEncoding.EncodeToString(frame.Image),
		SequenceId: frame.SequenceId,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Detection{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return Detection{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Detection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Detection{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result struct {
		Candidate  string  `json:"candidate"`
		Confidence float64 `json:"confidence"`
		None       bool    `json:"none"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Detection{}, err
	}

	if result.None || result.Candidate == "" {
		return Detection{}, nil
	}
	return Detection{Value: result.Candidate, Confidence: result.Confidence, OK: true}, nil
}
