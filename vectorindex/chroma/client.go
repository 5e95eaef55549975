// Package chroma implements vectorindex.Index against a Chroma server's
// HTTP API (v1).
//
// The client is a read view: SongChain queries embeddings that an ingestion
// pipeline owns and writes. Collection names are resolved to ids once and
// cached for the lifetime of the client.
package chroma

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/hupe1980/songchain/vectorindex"
)

// Options configures a Client.
type Options struct {
	// HTTPClient overrides the pooled default client.
	HTTPClient *http.Client

	// APIKey is sent as a bearer token when set.
	APIKey string

	// Timeout bounds each request when the default client is used.
	Timeout time.Duration

	// RateLimit throttles outgoing requests when set.
	RateLimit *rate.Limiter

	// Logger receives a debug line per request.
	Logger *slog.Logger
}

// Client talks to one Chroma server.
type Client struct {
	httpClient *http.Client
	transport  *http.Transport
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu            sync.RWMutex
	collectionIDs map[string]string
}

var _ vectorindex.Index = (*Client)(nil)

// New creates a client for the Chroma server at baseURL, e.g.
// "http://localhost:8000".
func New(baseURL string, optFns ...func(*Options)) *Client {
	opts := Options{
		Timeout: 30 * time.Second,
		Logger:  slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/") + "/api/v1",
		apiKey:        opts.APIKey,
		limiter:       opts.RateLimit,
		logger:        opts.Logger,
		collectionIDs: make(map[string]string),
	}

	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	} else {
		c.transport = &http.Transport{
			MaxIdleConns:        32,
			MaxIdleConnsPerHost: 32,
			IdleConnTimeout:     90 * time.Second,
		}
		c.httpClient = &http.Client{Timeout: opts.Timeout, Transport: c.transport}
	}

	return c
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, c.baseURL+"/heartbeat", nil, nil)
}

// Close releases pooled connections owned by the client.
func (c *Client) Close() error {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	return nil
}

type getResponse struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Metadatas  []map[string]any `json:"metadatas"`
}

// Get fetches records by id. Ids unknown to the server are skipped.
func (c *Client) Get(ctx context.Context, collection string, ids []string, includeVectors bool) (vectorindex.GetResult, error) {
	collID, err := c.collectionID(ctx, collection)
	if err != nil {
		return vectorindex.GetResult{}, err
	}

	body := map[string]any{
		"ids":     ids,
		"include": includeList(includeVectors),
	}

	var resp getResponse
	if err := c.doRequest(ctx, http.MethodPost, c.collectionURL(collID, "get"), body, &resp); err != nil {
		return vectorindex.GetResult{}, err
	}

	return decodeGet(resp, includeVectors), nil
}

// Find fetches all records matching the predicate.
func (c *Client) Find(ctx context.Context, collection string, where vectorindex.Where, includeVectors bool) (vectorindex.GetResult, error) {
	collID, err := c.collectionID(ctx, collection)
	if err != nil {
		return vectorindex.GetResult{}, err
	}

	body := map[string]any{
		"include": includeList(includeVectors),
	}
	if w := encodeWhere(where); w != nil {
		body["where"] = w
	}

	var resp getResponse
	if err := c.doRequest(ctx, http.MethodPost, c.collectionURL(collID, "get"), body, &resp); err != nil {
		return vectorindex.GetResult{}, err
	}

	return decodeGet(resp, includeVectors), nil
}

// Query returns up to k nearest neighbors of vector, ordered by ascending
// distance.
func (c *Client) Query(ctx context.Context, collection string, vector []float32, k int, where vectorindex.Where) (vectorindex.QueryResult, error) {
	if k <= 0 {
		return vectorindex.QueryResult{}, fmt.Errorf("invalid k: %d", k)
	}

	collID, err := c.collectionID(ctx, collection)
	if err != nil {
		return vectorindex.QueryResult{}, err
	}

	body := map[string]any{
		"query_embeddings": [][]float32{vector},
		"n_results":        k,
		"include":          []string{"metadatas", "distances"},
	}
	if w := encodeWhere(where); w != nil {
		body["where"] = w
	}

	var resp struct {
		IDs       [][]string         `json:"ids"`
		Distances [][]float64        `json:"distances"`
		Metadatas [][]map[string]any `json:"metadatas"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.collectionURL(collID, "query"), body, &resp); err != nil {
		return vectorindex.QueryResult{}, err
	}

	var res vectorindex.QueryResult
	if len(resp.IDs) == 0 {
		return res, nil
	}

	res.IDs = resp.IDs[0]
	if len(resp.Distances) > 0 {
		res.Distances = resp.Distances[0]
	}
	if len(resp.Metadatas) > 0 {
		res.Metadatas = make([]vectorindex.Document, len(resp.Metadatas[0]))
		for i, m := range resp.Metadatas[0] {
			res.Metadatas[i] = vectorindex.Document(m)
		}
	}

	return res, nil
}

// encodeWhere renders the predicate in Chroma's filter syntax: one clause
// inline, several wrapped in "$and".
func encodeWhere(where vectorindex.Where) map[string]any {
	if len(where) == 0 {
		return nil
	}

	clauses := make([]map[string]any, 0, len(where))
	for _, c := range where {
		clauses = append(clauses, map[string]any{
			c.Key: map[string]any{c.Operator.String(): c.Value},
		})
	}

	if len(clauses) == 1 {
		return clauses[0]
	}

	return map[string]any{"$and": clauses}
}

func includeList(includeVectors bool) []string {
	if includeVectors {
		return []string{"metadatas", "embeddings"}
	}
	return []string{"metadatas"}
}

func decodeGet(resp getResponse, includeVectors bool) vectorindex.GetResult {
	res := vectorindex.GetResult{IDs: resp.IDs}

	res.Metadatas = make([]vectorindex.Document, len(resp.Metadatas))
	for i, m := range resp.Metadatas {
		res.Metadatas[i] = vectorindex.Document(m)
	}

	if includeVectors {
		res.Vectors = resp.Embeddings
	}

	return res
}

func (c *Client) collectionURL(collID, op string) string {
	return fmt.Sprintf("%s/collections/%s/%s", c.baseURL, url.PathEscape(collID), op)
}

// collectionID resolves a collection name to its id, consulting the cache
// first.
func (c *Client) collectionID(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	id, ok := c.collectionIDs[name]
	c.mu.RUnlock()

	if ok {
		return id, nil
	}

	endpoint := fmt.Sprintf("%s/collections?name=%s", c.baseURL, url.QueryEscape(name))

	var resp struct {
		Collections []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"collections"`
	}
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}

	for _, coll := range resp.Collections {
		if strings.EqualFold(coll.Name, name) {
			c.mu.Lock()
			c.collectionIDs[name] = coll.ID
			c.mu.Unlock()

			return coll.ID, nil
		}
	}

	return "", fmt.Errorf("collection %q not found", name)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "chroma request",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chroma %s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
