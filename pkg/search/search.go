// Package search is a small OpenSearch client for the document index the
// chatbot answers FAQ questions from. Requests go through a resty client;
// in AWS that client signs them with SigV4 (see infra/aws.NewSignedClient).
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

var ErrRequest = errors.New("search request failed")

// Document is what the PDF indexer stores per file.
type Document struct {
	Attachment Attachment `json:"attachment"`
	FilePath   string     `json:"filePath"`
}

type Attachment struct {
	Content string `json:"content"`
}

// Hit is one matching document.
type Hit struct {
	ID     string   `json:"_id"`
	Score  float64  `json:"_score"`
	Source Document `json:"_source"`
}

// Result is the hits section of a search response.
type Result struct {
	Total int
	Hits  []Hit
}

type Client struct {
	http     *resty.Client
	endpoint string
	index    string
}

// New targets index on endpoint. An endpoint without a scheme is taken to
// be an https host name.
func New(httpClient *resty.Client, endpoint, index string) *Client {
	if endpoint != "" && !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return &Client{
		http:     httpClient.SetHeader("Content-Type", "application/json"),
		endpoint: strings.TrimRight(endpoint, "/"),
		index:    index,
	}
}

// Search runs a multi_match query across all fields and returns at most
// size hits.
func (c *Client) Search(ctx context.Context, text string, size int) (Result, error) {
	query := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{"query": text},
		},
	}
	var body struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []Hit `json:"hits"`
		} `json:"hits"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(query).
		SetResult(&body).
		Post(fmt.Sprintf("%s/%s/_search", c.endpoint, url.PathEscape(c.index)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		return Result{}, fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode(), resp.String())
	}
	return Result{Total: body.Hits.Total.Value, Hits: body.Hits.Hits}, nil
}

// Index stores doc under id, replacing any previous version.
func (c *Client) Index(ctx context.Context, id string, doc Document) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("%s/%s/_doc/%s", c.endpoint, url.PathEscape(c.index), url.PathEscape(id)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode(), resp.String())
	}
	return nil
}
