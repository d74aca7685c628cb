package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DocumentStore is the remote end of backup/restore: an opaque keyed document
// collection per entity. The ledger only ever bulk-writes and bulk-reads whole
// collections; there is no incremental sync and no conflict detection.
type DocumentStore interface {
	PutAll(ctx context.Context, collection string, docs map[string]Document) error
	GetAll(ctx context.Context, collection string) (map[string]Document, error)
}

// HTTPStore talks JSON to a remote document store. Collections live under
// {base}/usuarios/{user}/{collection}; a PUT replaces the named documents, a
// GET returns every document in the collection keyed by id.
type HTTPStore struct {
	base   string
	userID string
	client *http.Client
}

func NewHTTPStore(base, userID string) *HTTPStore {
	return &HTTPStore{
		base:   base,
		userID: userID,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPStore) collectionURL(collection string) string {
	return fmt.Sprintf("%s/usuarios/%s/%s", s.base, url.PathEscape(s.userID), url.PathEscape(collection))
}

func (s *HTTPStore) PutAll(ctx context.Context, collection string, docs map[string]Document) error {
	body, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.collectionURL(collection), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", collection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("put %s: remote returned %s", collection, resp.Status)
	}
	return nil
}

func (s *HTTPStore) GetAll(ctx context.Context, collection string) (map[string]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.collectionURL(collection), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", collection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// Empty collection, not an error: nothing was ever backed up.
		return map[string]Document{}, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s: remote returned %s", collection, resp.Status)
	}
	var docs map[string]Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return docs, nil
}
