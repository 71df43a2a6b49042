package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// AccountIndexer mirrors accounts into an Elasticsearch index for the admin search.
type AccountIndexer struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewAccountIndexer(es *elasticsearch.Client, index string, logger *logrus.Logger) *AccountIndexer {
	return &AccountIndexer{ES: es, IndexName: index, Logger: logger}
}

func accountDoc(a *entity.Account) map[string]any {
	doc := map[string]any{
		"id":               a.ID,
		"email":            a.Email,
		"roles":            a.GetRoles(),
		"birth_date":       a.BirthDate.Format("2006-01-02"),
		"is_account_valid": a.IsAccountValid,
		"created_at":       a.CreatedAt.Format(time.RFC3339Nano),
	}
	if a.AccountValidatedAt != nil {
		doc["account_validated_at"] = a.AccountValidatedAt.Format(time.RFC3339Nano)
	}
	return doc
}

func (i *AccountIndexer) Index(ctx context.Context, a *entity.Account) error {
	b, err := json.Marshal(accountDoc(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.IndexName, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		i.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over email and roles.
func (i *AccountIndexer) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "roles"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(i.ES.Search.WithContext(c), i.ES.Search.WithIndex(i.IndexName), i.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
