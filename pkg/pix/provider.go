// Package pix holds implementations of the external PIX payment provider
// port. The core only asks the provider for a payment code and amount
// reference; code rendering and payment confirmation happen outside.
package pix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// HTTPProvider requests PIX codes from a remote payment gateway. Calls are
// bounded by the caller's context deadline.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider pointed at the gateway base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type generateCodeRequest struct {
	Amount float64 `json:"amount"`
}

type generateCodeResponse struct {
	Code              string `json:"code"`
	ProviderReference string `json:"provider_reference"`
}

// GenerateCode asks the gateway for a PIX code covering amount.
func (p *HTTPProvider) GenerateCode(ctx context.Context, amount float64) (string, string, error) {
	payload, err := json.Marshal(generateCodeRequest{Amount: amount})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal PIX request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/pix/codes", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to build PIX request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("PIX gateway call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("PIX gateway returned status %d", resp.StatusCode)
	}

	var out generateCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("failed to decode PIX response: %w", err)
	}
	if out.Code == "" {
		return "", "", fmt.Errorf("PIX gateway returned an empty code")
	}
	return out.Code, out.ProviderReference, nil
}

// LocalProvider issues development PIX codes without any external call.
// Useful for local runs and integration tests.
type LocalProvider struct{}

// GenerateCode returns a synthetic copy-and-paste style code.
func (LocalProvider) GenerateCode(ctx context.Context, amount float64) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	ref := uuid.New().String()
	code := fmt.Sprintf("00020126PIX-DEV-%s5204%06.2f", ref[:8], amount)
	return code, ref, nil
}
