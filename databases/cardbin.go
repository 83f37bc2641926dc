package databases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rafaelcosta/card-bin-api/models"
)

// CardBinDatabase contains the methods to use with the in-memory BIN dataset
type CardBinDatabase interface {
	Lookup(bin string) (models.CardBinEntry, bool)
	ReplaceAll(entries []models.CardBinEntry)
	Count() int
}

type cardBinDatabase struct {
	mu      sync.RWMutex
	entries map[string]models.CardBinEntry
}

// NewCardBinDatabase initializes an empty BIN dataset
func NewCardBinDatabase() CardBinDatabase {
	return &cardBinDatabase{
		entries: map[string]models.CardBinEntry{},
	}
}

func (c *cardBinDatabase) Lookup(bin string) (models.CardBinEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[bin]
	return entry, ok
}

// ReplaceAll swaps the whole table under live lookups. The first entry
// for a duplicated BIN wins.
func (c *cardBinDatabase) ReplaceAll(entries []models.CardBinEntry) {
	next := make(map[string]models.CardBinEntry, len(entries))
	for _, e := range entries {
		if _, seen := next[e.BIN]; !seen {
			next[e.BIN] = e
		}
	}
	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
}

func (c *cardBinDatabase) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ParseCardBinCSV reads dataset rows of the form BIN,Brand,Type,... and
// keeps the first three columns. Short rows yield empty fields; rows with
// an empty BIN (including the header) are dropped. Malformed rows never
// abort the parse.
func ParseCardBinCSV(r io.Reader) []models.CardBinEntry {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var entries []models.CardBinEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		entry := models.CardBinEntry{
			BIN:   column(record, 0),
			Brand: column(record, 1),
			Type:  column(record, 2),
		}
		if entry.BIN == "" || strings.EqualFold(entry.BIN, "bin") {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func column(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// CardBinFetcher downloads the remote BIN dataset
type CardBinFetcher struct {
	url    string
	client *http.Client
}

// NewCardBinFetcher initializes a fetcher for the CSV dump at url
func NewCardBinFetcher(url string) *CardBinFetcher {
	return &CardBinFetcher{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchAll downloads and parses the dataset
func (f *CardBinFetcher) FetchAll(ctx context.Context) ([]models.CardBinEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching bin dataset", resp.StatusCode)
	}
	return ParseCardBinCSV(resp.Body), nil
}
