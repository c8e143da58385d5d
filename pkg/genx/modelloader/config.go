// Package modelloader registers completers described by model configuration
// files.
//
// A configuration file is YAML or JSON:
//
//	kind: openai               # or gemini; alternatively schema: openai/chat/v1
//	api_key: $OPENAI_API_KEY   # literal key or environment reference
//	base_url: https://api.openai.com/v1
//	models:
//	  - name: gpt-4o-mini
//	    model: gpt-4o-mini
//	    generate_params:
//	      temperature: 0.2
package modelloader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/genx/generators"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

// Verbose enables request body logging for debugging
var Verbose bool

// errMissingCredentials marks configs skipped by LoadFromDir.
var errMissingCredentials = errors.New("api_key is required")

type verboseTransport struct {
	base http.RoundTripper
}

func (t *verboseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err == nil {
			body = pretty.Bytes()
		}
		slog.Info("model request", "url", req.URL.String(), "body", string(body))
	}
	return t.base.RoundTrip(req)
}

// HTTPClient returns the client used for model requests: the default client,
// or a logging one when Verbose is set.
func HTTPClient() *http.Client {
	if Verbose {
		return &http.Client{Transport: &verboseTransport{base: http.DefaultTransport}}
	}
	return http.DefaultClient
}

type ConfigFile struct {
	Schema string `json:"schema,omitzero" yaml:"schema,omitzero"` // e.g., "openai/chat/v1"
	Kind   string `json:"kind,omitzero" yaml:"kind,omitzero"`     // "openai", "gemini"

	APIKey  string `json:"api_key,omitzero" yaml:"api_key,omitzero"` // Can be env var name like "$OPENAI_API_KEY"
	BaseURL string `json:"base_url,omitzero" yaml:"base_url,omitzero"`

	Models []Entry `json:"models,omitzero" yaml:"models,omitzero"`
}

type Entry struct {
	Name           string            `json:"name" yaml:"name"`
	Model          string            `json:"model" yaml:"model"`
	GenerateParams *genx.ModelParams `json:"generate_params,omitzero" yaml:"generate_params,omitzero"`
	UseSystemRole  bool              `json:"use_system_role,omitzero" yaml:"use_system_role,omitzero"`
	ExtraFields    map[string]any    `json:"extra_fields,omitzero" yaml:"extra_fields,omitzero"`
}

// LoadFromDir loads model configs from dir recursively and registers
// completers to mux (DefaultMux when nil). Returns the registered model
// names. Configs with an empty API key after env expansion are skipped.
func LoadFromDir(mux *generators.Mux, dir string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}
		fileNames, err := LoadFile(mux, path)
		if err != nil {
			if errors.Is(err, errMissingCredentials) {
				slog.Debug("skipping model config", "path", path, "error", err)
				return nil
			}
			return err
		}
		names = append(names, fileNames...)
		return nil
	})

	return names, err
}

// LoadFile registers the completers of one config file.
func LoadFile(mux *generators.Mux, path string) ([]string, error) {
	if mux == nil {
		mux = generators.DefaultMux
	}
	cfg, err := ParseConfig(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	names, err := registerConfig(mux, *cfg)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", path, err)
	}
	return names, nil
}

// ParseConfig reads a YAML or JSON config file.
func ParseConfig(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var cfg ConfigFile
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
	return &cfg, nil
}

func registerConfig(mux *generators.Mux, cfg ConfigFile) ([]string, error) {
	cfg.APIKey = expandEnv(cfg.APIKey)
	cfg.BaseURL = expandEnv(cfg.BaseURL)

	provider := strings.ToLower(cfg.Kind)
	if cfg.Schema != "" {
		// Schema format: {provider}/{subject}/{version}, e.g. "openai/chat/v1"
		parts := strings.Split(cfg.Schema, "/")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid schema: %s", cfg.Schema)
		}
		provider = parts[0]
	}

	switch provider {
	case "openai":
		return registerOpenAI(mux, cfg)
	case "gemini":
		return registerGemini(mux, cfg)
	default:
		return nil, fmt.Errorf("unknown kind: %s", provider)
	}
}

// expandEnv expands environment variables in a string.
// Supports formats: $VAR, ${VAR}, and plain values.
// If the value starts with $ but the env var is not set, returns empty string.
func expandEnv(s string) string {
	if strings.HasPrefix(s, "$") {
		return os.ExpandEnv(s)
	}
	return s
}

// NewOpenAIClient creates an OpenAI client for apiKey and an optional base URL.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(HTTPClient()),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &client
}

// NewGeminiClient creates a Gemini API client for apiKey and an optional
// base URL.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: HTTPClient(),
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}
	return genai.NewClient(ctx, cfg)
}

func registerOpenAI(mux *generators.Mux, cfg ConfigFile) ([]string, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for openai kind", errMissingCredentials)
	}
	client := NewOpenAIClient(cfg.APIKey, cfg.BaseURL)

	var names []string
	for _, m := range cfg.Models {
		if m.Name == "" || m.Model == "" {
			return nil, fmt.Errorf("model entry missing name or model")
		}
		if err := mux.Handle(m.Name, &genx.OpenAICompleter{
			Client:        client,
			Model:         m.Model,
			Params:        m.GenerateParams,
			UseSystemRole: m.UseSystemRole,
			ExtraFields:   m.ExtraFields,
		}); err != nil {
			return nil, fmt.Errorf("register completer %q: %w", m.Name, err)
		}
		names = append(names, m.Name)
	}
	return names, nil
}

func registerGemini(mux *generators.Mux, cfg ConfigFile) ([]string, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for gemini kind", errMissingCredentials)
	}
	client, err := NewGeminiClient(context.Background(), cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range cfg.Models {
		if m.Name == "" || m.Model == "" {
			return nil, fmt.Errorf("model entry missing name or model")
		}
		if err := mux.Handle(m.Name, &genx.GeminiCompleter{
			Client: client,
			Model:  m.Model,
			Params: m.GenerateParams,
		}); err != nil {
			return nil, fmt.Errorf("register completer %q: %w", m.Name, err)
		}
		names = append(names, m.Name)
	}
	return names, nil
}
