package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

type httpProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newHTTPProvider(model domain.ModelDefinition, client *http.Client) ports.CompletionProvider {
	return &httpProvider{model: model, httpClient: client}
}

func (p *httpProvider) Name() string {
	return "http/" + p.model.Name
}

// Complete posts the prompt as a single user message and returns the first
// choice's content verbatim. Any transport failure or non-2xx status maps to
// BackendUnavailableError; the caller never retries.
func (p *httpProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model:     p.model.ModelID,
		MaxTokens: maxTokens(p.model),
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.BackendUnavailableError{Provider: p.Name(), Err: err}
	}
	httpReq.Header.Set("content-type", "application/json")
	if key := authToken(p.model); key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.BackendUnavailableError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", &domain.BackendUnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &domain.BackendUnavailableError{Provider: p.Name(), Err: err}
	}
	if decoded.Error != nil {
		return "", &domain.BackendUnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("backend error: %s", decoded.Error.Message),
		}
	}
	return decoded.FirstMessage(), nil
}

func authToken(model domain.ModelDefinition) string {
	if model.AuthEnvVar == "" {
		return ""
	}
	return os.Getenv(model.AuthEnvVar)
}

func maxTokens(model domain.ModelDefinition) int {
	if model.MaxTokens > 0 {
		return model.MaxTokens
	}
	return domain.DefaultMaxTokens
}

var _ ports.CompletionProvider = (*httpProvider)(nil)
