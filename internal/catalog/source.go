package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// DefaultURL lists the gitignore.io templates as a JSON object keyed by
// template key.
const DefaultURL = "https://www.toptal.com/developers/gitignore/api/list?format=json"

var (
	errEmptyPayload = errors.New("empty payload")
	errNotAList     = errors.New("expected a JSON object or array")
)

// maxPayloadBytes bounds the response body read from the source.
const maxPayloadBytes = 32 << 20

// Source supplies the templates for a catalog.
type Source interface {
	// Fetch returns every template the source offers.
	Fetch(ctx context.Context) ([]Template, error)
}

// HTTPSource fetches the template list with one GET request.
type HTTPSource struct {
	// URL is the JSON endpoint.
	URL string
	// HTTPClient is the HTTP client for requests.
	HTTPClient *http.Client
	// UserAgent is sent when non-empty.
	UserAgent string
}

// NewHTTPSource creates an HTTP source. A zero timeout means no timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	return &HTTPSource{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Template, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, NewFetchError(s.URL, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, NewFetchError(s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusError(s.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, NewFetchError(s.URL, err)
	}

	templates, err := Decode(body)
	if err != nil {
		return nil, NewPayloadError(s.URL, "malformed template list", err)
	}
	return templates, nil
}

// entry is one template as listed by the source.
type entry struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Contents string `json:"contents"`
}

// Decode parses a template list. Both a JSON object keyed by template key
// and a JSON array of entries are accepted. Entries without a name are
// dropped. Object entries are returned in key order.
func Decode(data []byte) ([]Template, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmptyPayload
	}

	switch data[0] {
	case '[':
		var entries []entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		templates := make([]Template, 0, len(entries))
		for _, e := range entries {
			if e.Name == "" {
				continue
			}
			templates = append(templates, Template{Key: e.Key, Name: e.Name, Contents: e.Contents})
		}
		return templates, nil

	case '{':
		var entries map[string]entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return New(fromMap(entries)).all(), nil

	default:
		return nil, errNotAList
	}
}

func fromMap(entries map[string]entry) []Template {
	templates := make([]Template, 0, len(entries))
	for key, e := range entries {
		if e.Name == "" {
			continue
		}
		templates = append(templates, Template{Key: key, Name: e.Name, Contents: e.Contents})
	}
	return templates
}

// all returns the templates in key order.
func (c *Catalog) all() []Template {
	out := make([]Template, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.byKey[k])
	}
	return out
}
