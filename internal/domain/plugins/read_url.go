package plugins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/oauth2"

	"github.com/mcp-assist/customtools/internal/domain/registry"
)

const (
	readURLToolName     = "read_url"
	readURLDefaultLimit = 20000
	readURLMaxLimit     = 100000
	readURLMaxBody      = 5 * 1024 * 1024
)

// ReadURL fetches a page and returns its readable text.
type ReadURL struct {
	client       *http.Client
	userAgent    string
	allowSchemes map[string]bool
}

// NewReadURL creates the plugin. When token is set it is sent as a bearer
// token to tokenHost only, e.g. the home-automation host's own API.
func NewReadURL(token, tokenHost string) (*ReadURL, error) {
	r := &ReadURL{
		client:       &http.Client{Timeout: 30 * time.Second},
		userAgent:    "mcp-assist-customtools/1.0",
		allowSchemes: map[string]bool{"http": true, "https": true},
	}
	if token == "" {
		return r, nil
	}
	if tokenHost == "" {
		return nil, fmt.Errorf("read_url: token set without a token host: %w", ErrMissingOption)
	}

	base := http.DefaultTransport
	r.client.Transport = &tokenHostTransport{
		host: strings.ToLower(tokenHost),
		auth: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		base: base,
	}
	return r, nil
}

// tokenHostTransport attaches the bearer token per request, so redirects
// that leave the token host go out without it.
type tokenHostTransport struct {
	host string
	auth http.RoundTripper
	base http.RoundTripper
}

func (t *tokenHostTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.EqualFold(req.URL.Host, t.host) {
		return t.auth.RoundTrip(req)
	}
	return t.base.RoundTrip(req)
}

func (r *ReadURL) Initialize(ctx context.Context) error {
	return nil
}

func (r *ReadURL) ToolDefinitions() ([]registry.Tool, error) {
	return []registry.Tool{
		{
			Name:        readURLToolName,
			Title:       "Read URL",
			Description: "Fetches a web page and returns its readable text content with scripts, styles and markup removed.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"url": {
						Type:        "string",
						Description: "The http(s) URL to read.",
					},
					"max_length": {
						Type:        "integer",
						Description: fmt.Sprintf("Maximum characters of content to return. Defaults to %d.", readURLDefaultLimit),
						Default:     readURLDefaultLimit,
						Minimum:     registry.IntPtr(100),
						Maximum:     registry.IntPtr(readURLMaxLimit),
					},
					"raw": {
						Type:        "boolean",
						Description: "Return the response body without HTML extraction.",
					},
				},
				Required: []string{"url"},
			},
			Annotations: &registry.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: true},
		},
	}, nil
}

func (r *ReadURL) HandlesTool(name string) bool {
	return name == readURLToolName
}

func (r *ReadURL) HandleCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if !r.HandlesTool(name) {
		return nil, fmt.Errorf("read_url does not provide %s", name)
	}

	rawURL := getString(args, "url")
	if rawURL == "" {
		return nil, fmt.Errorf("url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || !r.allowSchemes[strings.ToLower(u.Scheme)] {
		return nil, fmt.Errorf("invalid URL: %s (only http and https are supported)", rawURL)
	}
	maxLength := clamp(getInt(args, "max_length", readURLDefaultLimit), 100, readURLMaxLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, readURLMaxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, u.String())
	}

	contentType := resp.Header.Get("Content-Type")
	var title, content string
	if !getBool(args, "raw") && isHTML(contentType, body) {
		title, content = extractText(string(body))
	} else {
		content = string(body)
	}

	truncated := false
	if runes := []rune(content); len(runes) > maxLength {
		content = string(runes[:maxLength])
		truncated = true
	}

	result := map[string]interface{}{
		"url":          resp.Request.URL.String(),
		"status":       resp.StatusCode,
		"content_type": contentType,
		"content":      content,
		"truncated":    truncated,
	}
	if title != "" {
		result["title"] = title
	}
	return result, nil
}

func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

var (
	skippedElements = map[string]bool{
		"script": true, "style": true, "noscript": true, "template": true,
		"svg": true, "iframe": true,
	}
	blockElements = map[string]bool{
		"p": true, "div": true, "br": true, "li": true, "tr": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"section": true, "article": true, "header": true, "footer": true,
		"blockquote": true, "pre": true, "table": true, "ul": true, "ol": true,
	}
)

// extractText returns the document title and its visible text, one block
// element per line.
func extractText(doc string) (string, string) {
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		sb      strings.Builder
		title   strings.Builder
		skip    int
		inTitle bool
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(collapse(title.String())), tidyLines(sb.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)
			if name == "title" {
				inTitle = true
			}
			if tt == html.StartTagToken && skippedElements[name] {
				skip++
			}
			if blockElements[name] {
				sb.WriteByte('\n')
			}
		case html.EndTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)
			if name == "title" {
				inTitle = false
			}
			if skippedElements[name] && skip > 0 {
				skip--
			}
			if blockElements[name] {
				sb.WriteByte('\n')
			}
		case html.TextToken:
			text := string(z.Text())
			if inTitle {
				title.WriteString(text)
				continue
			}
			if skip > 0 {
				continue
			}
			if t := collapse(text); t != "" {
				sb.WriteString(t)
				sb.WriteByte(' ')
			}
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
