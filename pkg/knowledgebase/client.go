// Package knowledgebase is the typed client for the crowd-sourced
// fact-checking backend. It issues GraphQL queries and mutations over HTTP
// and maps the backend's failure modes onto a small error taxonomy; it does
// no retrying — turn-level retry policy belongs to the transport layer.
package knowledgebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"rumorcheck-be/internal/pkg/logger"
)

// Client is the set of knowledge-base operations the conversation core needs.
type Client interface {
	ListArticles(ctx context.Context, text string, first int) ([]ArticleCandidate, error)
	GetArticle(ctx context.Context, id string) (*Article, error)
	GetReply(ctx context.Context, id string) (*Reply, error)
	CreateArticle(ctx context.Context, userID, text, reason string) (string, error)
	CreateReplyRequest(ctx context.Context, userID, articleID, reason string) error
	CreateOrUpdateArticleReplyFeedback(ctx context.Context, userID, articleID, replyID, vote, comment string) (int, error)
}

type client struct {
	apiURL      string
	httpClient  *http.Client
	log         logger.ILogger
	searchCache *cache.Cache // search results, keyed by query text
}

const searchCacheTTL = 30 * time.Second

// NewClient builds a knowledge-base client for the given GraphQL endpoint.
func NewClient(apiURL string, log logger.ILogger) Client {
	return &client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
		// Queries are arbitrary user text; expired entries are purged on a
		// timer so the cache stays bounded.
		searchCache: cache.New(searchCacheTTL, time.Minute),
	}
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts one GraphQL operation and decodes the data envelope into out.
// userID, when set, attributes the operation to that user.
func (c *client) do(ctx context.Context, query string, variables map[string]interface{}, userID string, out interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("x-app-user-id", userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &ProtocolError{StatusCode: resp.StatusCode, Messages: []string{"malformed response body"}}
	}

	if resp.StatusCode >= 400 {
		return &ProtocolError{StatusCode: resp.StatusCode, Messages: errorMessages(envelope.Errors)}
	}

	if len(envelope.Errors) > 0 {
		if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return &ProtocolError{StatusCode: resp.StatusCode, Messages: errorMessages(envelope.Errors)}
		}
		// Usable data alongside errors: continue degraded.
		c.log.Warn("knowledgebase", "GraphQL operation returned partial errors", map[string]interface{}{
			"errors": errorMessages(envelope.Errors),
		})
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &ProtocolError{StatusCode: resp.StatusCode, Messages: []string{"malformed data payload"}}
		}
	}
	return nil
}

func errorMessages(errs []graphQLError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

const listArticlesQuery = `
query ($text: String!, $first: Int) {
  ListArticles(
    filter: { moreLikeThis: { like: $text } }
    orderBy: [{ _score: DESC }]
    first: $first
  ) {
    edges {
      node {
        id
        text
      }
    }
  }
}`

func (c *client) ListArticles(ctx context.Context, text string, first int) ([]ArticleCandidate, error) {
	// Auto-advance chains re-search the same text within seconds.
	if val, ok := c.searchCache.Get(text); ok {
		return val.([]ArticleCandidate), nil
	}

	var result struct {
		ListArticles struct {
			Edges []struct {
				Node ArticleCandidate `json:"node"`
			} `json:"edges"`
		} `json:"ListArticles"`
	}
	err := c.do(ctx, listArticlesQuery, map[string]interface{}{"text": text, "first": first}, "", &result)
	if err != nil {
		return nil, err
	}

	candidates := make([]ArticleCandidate, 0, len(result.ListArticles.Edges))
	for _, edge := range result.ListArticles.Edges {
		candidates = append(candidates, edge.Node)
	}
	c.searchCache.Set(text, candidates, cache.DefaultExpiration)
	return candidates, nil
}

const getArticleQuery = `
query ($id: String!) {
  GetArticle(id: $id) {
    text
    replyCount
    articleReplies(status: NORMAL) {
      reply {
        id
        type
        text
      }
      positiveFeedbackCount
      negativeFeedbackCount
    }
  }
}`

func (c *client) GetArticle(ctx context.Context, id string) (*Article, error) {
	var result struct {
		GetArticle *Article `json:"GetArticle"`
	}
	if err := c.do(ctx, getArticleQuery, map[string]interface{}{"id": id}, "", &result); err != nil {
		return nil, err
	}
	if result.GetArticle == nil {
		return nil, &ProtocolError{StatusCode: http.StatusOK, Messages: []string{"article not found: " + id}}
	}
	return result.GetArticle, nil
}

const getReplyQuery = `
query ($id: String!) {
  GetReply(id: $id) {
    type
    text
    reference
  }
}`

func (c *client) GetReply(ctx context.Context, id string) (*Reply, error) {
	var result struct {
		GetReply *Reply `json:"GetReply"`
	}
	if err := c.do(ctx, getReplyQuery, map[string]interface{}{"id": id}, "", &result); err != nil {
		return nil, err
	}
	if result.GetReply == nil {
		return nil, &ProtocolError{StatusCode: http.StatusOK, Messages: []string{"reply not found: " + id}}
	}
	result.GetReply.ID = id
	return result.GetReply, nil
}

const createArticleMutation = `
mutation ($text: String!, $reason: String!) {
  CreateArticle(text: $text, reason: $reason, reference: { type: LINE }) {
    id
  }
}`

func (c *client) CreateArticle(ctx context.Context, userID, text, reason string) (string, error) {
	var result struct {
		CreateArticle struct {
			ID string `json:"id"`
		} `json:"CreateArticle"`
	}
	err := c.do(ctx, createArticleMutation, map[string]interface{}{"text": text, "reason": reason}, userID, &result)
	if err != nil {
		return "", err
	}
	return result.CreateArticle.ID, nil
}

const createReplyRequestMutation = `
mutation ($articleId: String!, $reason: String) {
  CreateReplyRequest(articleId: $articleId, reason: $reason) {
    replyRequestCount
  }
}`

func (c *client) CreateReplyRequest(ctx context.Context, userID, articleID, reason string) error {
	return c.do(ctx, createReplyRequestMutation, map[string]interface{}{"articleId": articleID, "reason": reason}, userID, nil)
}

const feedbackMutation = `
mutation ($vote: FeedbackVote!, $articleId: String!, $replyId: String!, $comment: String) {
  action: CreateOrUpdateArticleReplyFeedback(
    vote: $vote
    articleId: $articleId
    replyId: $replyId
    comment: $comment
  ) {
    feedbackCount
  }
}`

func (c *client) CreateOrUpdateArticleReplyFeedback(ctx context.Context, userID, articleID, replyID, vote, comment string) (int, error) {
	variables := map[string]interface{}{
		"vote":      vote,
		"articleId": articleID,
		"replyId":   replyID,
	}
	if comment != "" {
		variables["comment"] = comment
	}

	var result struct {
		Action struct {
			FeedbackCount int `json:"feedbackCount"`
		} `json:"action"`
	}
	if err := c.do(ctx, feedbackMutation, variables, userID, &result); err != nil {
		return 0, err
	}
	return result.Action.FeedbackCount, nil
}
