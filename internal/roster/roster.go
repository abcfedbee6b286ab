// Package roster fetches the master participant list from a published sheet.
package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmynk/qitta/internal/metrics"
	"github.com/mmynk/qitta/internal/models"
)

// DefaultProxyURL is a public CORS proxy; the escaped sheet URL is appended.
const DefaultProxyURL = "https://api.allorigins.win/raw?url="

// ErrFetchFailed is returned when neither the direct nor the proxied fetch worked.
var ErrFetchFailed = errors.New("roster fetch failed")

// Fetcher downloads and parses the roster CSV.
type Fetcher struct {
	// Client performs the requests. Defaults to http.DefaultClient.
	Client *http.Client

	// URL is the CSV resource.
	URL string

	// ProxyURL is tried when the direct fetch fails. Empty disables the fallback.
	ProxyURL string

	Metrics *metrics.Metrics
}

// Fetch tries the direct URL first, then the proxy.
// Timeouts and cancellation come from ctx.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.MasterParticipant, error) {
	body, directErr := f.get(ctx, f.URL)
	f.Metrics.RosterFetched("direct", directErr)
	if directErr == nil {
		return Parse(strings.NewReader(body))
	}
	slog.Warn("Direct roster fetch failed, trying proxy", "url", f.URL, "error", directErr)

	if f.ProxyURL == "" {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, directErr)
	}
	body, proxyErr := f.get(ctx, f.ProxyURL+url.QueryEscape(f.URL))
	f.Metrics.RosterFetched("proxy", proxyErr)
	if proxyErr != nil {
		slog.Error("All roster fetch methods failed", "url", f.URL, "error", proxyErr)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, errors.Join(directErr, proxyErr))
	}
	return Parse(strings.NewReader(body))
}

func (f *Fetcher) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

// Parse reads `name,type` rows. A first row naming its columns is skipped,
// as are rows without a name. Unknown types are read as adult. Participants
// get stable name-derived IDs; repeated names keep their first row.
func Parse(r io.Reader) ([]models.MasterParticipant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		out  []models.MasterParticipant
		seen = make(map[string]bool)
	)
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse roster: %w", err)
		}

		cols := make([]string, len(record))
		for i, c := range record {
			cols[i] = strings.Trim(strings.TrimSpace(c), `"`)
		}
		if len(cols) == 0 || cols[0] == "" {
			continue
		}
		if row == 0 && isHeader(cols[0]) {
			continue
		}

		var rawType string
		if len(cols) > 1 {
			rawType = cols[1]
		}
		pt, err := models.ParseParticipantType(rawType)
		if err != nil {
			slog.Warn("Unknown roster type, treating as adult", "row", row+1, "name", cols[0], "error", err)
			pt = models.Adult
		}

		id := models.ParticipantID(cols[0])
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.MasterParticipant{ID: id, Name: cols[0], Type: pt})
	}
	return out, nil
}

func isHeader(first string) bool {
	return strings.Contains(first, "الاسم") || strings.Contains(strings.ToLower(first), "name")
}
