package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"intake/internal/enquiry/models"
)

// MockTransport answers deterministically with a configurable latency to mimic
// real-world calls. It is the default collaborator in local development and
// tests.
type MockTransport struct {
	Latency time.Duration
	// Fail flips the transport into rejecting every enquiry, for tests.
	Fail    bool
	Message string
}

func (t MockTransport) SubmitEnquiry(_ context.Context, _ models.EnquiryRecord) (TransportResult, error) {
	time.Sleep(t.Latency)
	if t.Fail {
		message := t.Message
		if message == "" {
			message = "enquiry service temporarily unavailable"
		}
		return TransportResult{Success: false, Message: message}, nil
	}
	return TransportResult{Success: true, Message: "received"}, nil
}

// HTTPTransport posts the enquiry as JSON to a real endpoint.
type HTTPTransport struct {
	URL    string
	Client *http.Client
}

func NewHTTPTransport(url string) *HTTPTransport {
	return &HTTPTransport{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *HTTPTransport) SubmitEnquiry(ctx context.Context, record models.EnquiryRecord) (TransportResult, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return TransportResult{}, fmt.Errorf("marshal enquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return TransportResult{}, fmt.Errorf("build enquiry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return TransportResult{}, fmt.Errorf("submit enquiry: %w", err)
	}
	defer resp.Body.Close()

	var result TransportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return TransportResult{}, fmt.Errorf("decode enquiry response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest && result.Message == "" {
		result.Message = fmt.Sprintf("enquiry endpoint returned status %d", resp.StatusCode)
	}
	return result, nil
}
