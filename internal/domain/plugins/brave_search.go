package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mcp-assist/customtools/internal/domain/registry"
)

const (
	braveSearchToolName = "brave_web_search"
	braveDefaultBaseURL = "https://api.search.brave.com/res/v1"
)

// BraveSearch queries the Brave Search web API.
type BraveSearch struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewBraveSearch creates the plugin. The subscription token is mandatory.
func NewBraveSearch(apiKey string) (*BraveSearch, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("brave search: %w", ErrMissingAPIKey)
	}
	return &BraveSearch{
		apiKey:  apiKey,
		baseURL: braveDefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (b *BraveSearch) Initialize(ctx context.Context) error {
	if _, err := url.Parse(b.baseURL); err != nil {
		return fmt.Errorf("invalid brave endpoint: %w", err)
	}
	return nil
}

func (b *BraveSearch) ToolDefinitions() ([]registry.Tool, error) {
	return []registry.Tool{
		{
			Name:        braveSearchToolName,
			Title:       "Web Search",
			Description: "Searches the web with Brave Search. Returns titles, URLs and snippets for the top results. Use read_url to fetch a full page.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"query": {
						Type:        "string",
						Description: "Search query (e.g., 'weather in Oslo tomorrow').",
					},
					"count": {
						Type:        "integer",
						Description: "Number of results to return (1-20). Defaults to 5.",
						Default:     5,
						Minimum:     registry.IntPtr(1),
						Maximum:     registry.IntPtr(20),
					},
					"offset": {
						Type:        "integer",
						Description: "Page offset for pagination (0-9).",
						Minimum:     registry.IntPtr(0),
						Maximum:     registry.IntPtr(9),
					},
					"freshness": {
						Type:        "string",
						Description: "Restrict results by age: pd (day), pw (week), pm (month), py (year).",
						Enum:        []string{"pd", "pw", "pm", "py"},
					},
				},
				Required: []string{"query"},
			},
			Annotations: &registry.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: true},
		},
	}, nil
}

func (b *BraveSearch) HandlesTool(name string) bool {
	return name == braveSearchToolName
}

// braveResponse is the subset of the web search response we surface.
type braveResponse struct {
	Query struct {
		Original string `json:"original"`
	} `json:"query"`
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
		} `json:"results"`
	} `json:"web"`
}

func (b *BraveSearch) HandleCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if !b.HandlesTool(name) {
		return nil, fmt.Errorf("brave search does not provide %s", name)
	}

	query := getString(args, "query")
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	count := clamp(getInt(args, "count", 5), 1, 20)
	offset := clamp(getInt(args, "offset", 0), 0, 9)

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if freshness := getString(args, "freshness"); freshness != "" {
		params.Set("freshness", freshness)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave search returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]map[string]interface{}, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		item := map[string]interface{}{
			"title":       r.Title,
			"url":         r.URL,
			"description": r.Description,
		}
		if r.Age != "" {
			item["age"] = r.Age
		}
		results = append(results, item)
	}

	return map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	}, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
