package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/haivivi/agentpatterns/pkg/tool"
	"github.com/itchyny/gojq"
)

// MaxResponseSize caps the body read by HTTPGet.
const MaxResponseSize = 1 << 20

type httpGetArgs struct {
	URL string `json:"url" jsonschema:"the URL to fetch"`
	JQ  string `json:"jq,omitempty" jsonschema:"optional jq expression applied to a JSON response"`
}

// HTTPGet fetches a URL and returns its body, decoded when it is JSON.
type HTTPGet struct {
	Client *http.Client
}

// Tool returns the http_get tool backed by h.
func (h *HTTPGet) Tool() *tool.Tool {
	return tool.MustNew("http_get",
		"Fetch a URL with HTTP GET. If jq is set, the JSON response is filtered with that jq expression.",
		h.get)
}

func (h *HTTPGet) get(ctx context.Context, args httpGetArgs) (any, error) {
	var query *gojq.Query
	if args.JQ != "" {
		q, err := gojq.Parse(args.JQ)
		if err != nil {
			return nil, fmt.Errorf("invalid jq expression %q: %w", args.JQ, err)
		}
		query = q
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, args.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseSize)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(body))
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		if query != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return string(body), nil
	}
	if query == nil {
		return data, nil
	}
	return runJQ(query, data)
}

// runJQ returns the first result of query, or all results as a list when
// there are several.
func runJQ(query *gojq.Query, input any) (any, error) {
	var results []any
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("jq error: %w", err)
		}
		results = append(results, v)
	}
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("jq expression returned no result")
	case 1:
		return results[0], nil
	}
	return results, nil
}
