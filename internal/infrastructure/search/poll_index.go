package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
)

// PollIndex keeps poll documents in an Elasticsearch index.
type PollIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewPollIndex(es *elasticsearch.Client, index string) *PollIndex {
	return &PollIndex{es: es, index: index, timeout: 3 * time.Second}
}

type pollDocument struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	CreatorID   string    `json:"creator_id"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDocument(p *entity.Poll) pollDocument {
	opts := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		opts = append(opts, o.Text)
	}
	return pollDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Options:     opts,
		CreatorID:   p.CreatorID,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
	}
}

func (x *PollIndex) Index(ctx context.Context, p *entity.Poll) error {
	b, err := json.Marshal(toDocument(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index poll %d: %s", p.ID, res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *PollIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete poll %d: %s", id, res.Status())
	}
	return nil
}

func searchBody(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^3", "description", "options"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_public": true},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
}

// Search returns matching poll ids, best match first.
func (x *PollIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	b, err := json.Marshal(searchBody(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		// index not created yet
		return []int64{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
