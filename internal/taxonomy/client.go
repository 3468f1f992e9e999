package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"relist/engine/internal/config"
	"relist/engine/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ErrEmptyQuery is returned before any network call when the free-text query
// is empty or whitespace-only. Callers reject this input; it never reaches
// the taxonomy service.
var ErrEmptyQuery = errors.New("category suggestion query is empty")

// APIError carries the raw status and body of a failed taxonomy call so the
// fault translator can classify it later. No call in this client retries.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("taxonomy API error: status %d: %s", e.Status, e.Body)
}

// TreeIDCache is the cross-process cache of resolved category tree ids.
// Implementations may be nil-safe absent; the client works without one.
type TreeIDCache interface {
	GetTreeID(ctx context.Context, marketplace string) (string, error)
	SetTreeID(ctx context.Context, marketplace, treeID string) error
	Invalidate(ctx context.Context, marketplace string) error
}

type Client interface {
	ResolveCategoryTreeID(ctx context.Context, marketplace string) (string, error)
	InvalidateTreeID(ctx context.Context, marketplace string) error
	SuggestCategories(ctx context.Context, freeText string) ([]domain.CategorySuggestion, error)
	AspectsForCategory(ctx context.Context, categoryID string) ([]domain.AspectConstraint, error)
	IsLeaf(ctx context.Context, categoryID string) (bool, error)
}

type taxonomyClient struct {
	rl          ratelimit.Limiter
	config      config.TaxonomyConfig
	baseURL     string
	httpClient  *resty.Client
	treeCache   TreeIDCache
	callTimeout time.Duration

	// Tree id is resolved once and reused for the process lifetime.
	treeMutex sync.Mutex
	treeIDs   map[string]string
}

func NewClient(cfg config.TaxonomyConfig, treeCache TreeIDCache) Client {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Language", "en-US")

	return &taxonomyClient{
		rl:          ratelimit.New(cfg.MaxRequestsPerSecond),
		config:      cfg,
		baseURL:     cfg.BaseURL,
		httpClient:  client,
		treeCache:   treeCache,
		callTimeout: time.Duration(cfg.Timeout) * time.Second,
		treeIDs:     make(map[string]string),
	}
}

func (c *taxonomyClient) ResolveCategoryTreeID(ctx context.Context, marketplace string) (string, error) {
	c.treeMutex.Lock()
	defer c.treeMutex.Unlock()

	if treeID, ok := c.treeIDs[marketplace]; ok {
		return treeID, nil
	}

	if c.treeCache != nil {
		treeID, err := c.treeCache.GetTreeID(ctx, marketplace)
		if err != nil {
			log.Warnf("Failed to read tree id cache for %s: %v", marketplace, err)
		} else if treeID != "" {
			c.treeIDs[marketplace] = treeID
			log.Debugf("Resolved category tree id %s for %s from cache", treeID, marketplace)
			return treeID, nil
		}
	}

	url := fmt.Sprintf("%s/get_default_category_tree_id?marketplace_id=%s", c.baseURL, marketplace)

	var body treeIDResponse
	if err := c.getJSON(ctx, url, &body); err != nil {
		return "", fmt.Errorf("failed to resolve category tree id for %s: %w", marketplace, err)
	}
	if body.CategoryTreeID == "" {
		return "", fmt.Errorf("taxonomy service returned no category tree id for %s", marketplace)
	}

	c.treeIDs[marketplace] = body.CategoryTreeID

	if c.treeCache != nil {
		if err := c.treeCache.SetTreeID(ctx, marketplace, body.CategoryTreeID); err != nil {
			log.Warnf("Failed to cache tree id for %s: %v", marketplace, err)
		}
	}

	log.Infof("✅ Resolved category tree id %s for marketplace %s", body.CategoryTreeID, marketplace)
	return body.CategoryTreeID, nil
}

func (c *taxonomyClient) InvalidateTreeID(ctx context.Context, marketplace string) error {
	c.treeMutex.Lock()
	delete(c.treeIDs, marketplace)
	c.treeMutex.Unlock()

	if c.treeCache != nil {
		return c.treeCache.Invalidate(ctx, marketplace)
	}
	return nil
}

func (c *taxonomyClient) SuggestCategories(ctx context.Context, freeText string) ([]domain.CategorySuggestion, error) {
	if strings.TrimSpace(freeText) == "" {
		return nil, ErrEmptyQuery
	}

	treeID, err := c.ResolveCategoryTreeID(ctx, c.config.MarketplaceID)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/category_tree/%s/get_category_suggestions", c.baseURL, treeID)

	var body suggestionsResponse
	if err := c.getJSONWithQuery(ctx, url, map[string]string{"q": freeText}, &body); err != nil {
		return nil, fmt.Errorf("failed to fetch category suggestions: %w", err)
	}

	suggestions := body.toDomain()
	// Zero suggestions is a valid outcome, distinct from a failed call.
	log.Debugf("Taxonomy service returned %d suggestions for %q", len(suggestions), freeText)
	return suggestions, nil
}

func (c *taxonomyClient) AspectsForCategory(ctx context.Context, categoryID string) ([]domain.AspectConstraint, error) {
	treeID, err := c.ResolveCategoryTreeID(ctx, c.config.MarketplaceID)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/category_tree/%s/get_item_aspects_for_category", c.baseURL, treeID)

	var body aspectsResponse
	if err := c.getJSONWithQuery(ctx, url, map[string]string{"category_id": categoryID}, &body); err != nil {
		return nil, fmt.Errorf("failed to fetch aspects for category %s: %w", categoryID, err)
	}

	aspects := body.toDomain()
	log.Debugf("Fetched %d aspect constraints for category %s", len(aspects), categoryID)
	return aspects, nil
}

func (c *taxonomyClient) IsLeaf(ctx context.Context, categoryID string) (bool, error) {
	treeID, err := c.ResolveCategoryTreeID(ctx, c.config.MarketplaceID)
	if err != nil {
		return false, err
	}

	url := fmt.Sprintf("%s/category_tree/%s/get_category_subtree", c.baseURL, treeID)

	var body subtreeResponse
	if err := c.getJSONWithQuery(ctx, url, map[string]string{"category_id": categoryID}, &body); err != nil {
		return false, fmt.Errorf("failed to fetch subtree for category %s: %w", categoryID, err)
	}

	return len(body.CategorySubtreeNode.ChildCategoryTreeNodes) == 0, nil
}

func (c *taxonomyClient) getJSON(ctx context.Context, url string, out any) error {
	return c.getJSONWithQuery(ctx, url, nil, out)
}

func (c *taxonomyClient) getJSONWithQuery(ctx context.Context, url string, query map[string]string, out any) error {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req := c.httpClient.R().
		SetContext(reqCtx).
		SetResult(out)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}
