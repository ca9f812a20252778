// Package provider implements completion backends for the pipeline.
//
// Two transports are supported: an OpenAI-style chat-completions HTTP call
// (Ollama's /v1/chat/completions included) and a local generator process fed
// the prompt on stdin. Either way the backend's reply is returned as opaque
// raw text; candidate extraction happens downstream in the parser.
package provider

import (
	"fmt"
	"net/http"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// Factory creates completion providers from model definitions. A single HTTP
// client is shared across all HTTP providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a provider factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// ForModel implements ports.ProviderFactory. A definition with a local
// command wins over an endpoint; a definition with neither is a
// configuration error.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.CompletionProvider, error) {
	switch {
	case model.IsLocalCommand():
		return newCommandProvider(model), nil
	case model.Endpoint != "":
		return newHTTPProvider(model, f.httpClient), nil
	default:
		return nil, fmt.Errorf("model %s: neither endpoint nor command configured", model.Name)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
