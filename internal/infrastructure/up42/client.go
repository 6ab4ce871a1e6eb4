package up42

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/archive-alert/internal/pkg/validator"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// credentials - содержимое файла с учётными данными каталога
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchRequest struct {
	Datetime    string                    `json:"datetime"`
	Intersects  *geojson.Geometry         `json:"intersects"`
	Collections []string                  `json:"collections"`
	Limit       int                       `json:"limit"`
	Query       map[string]map[string]any `json:"query,omitempty"`
	SortBy      []sortField               `json:"sortby,omitempty"`
}

type sortField struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type link struct {
	Rel    string          `json:"rel"`
	Href   string          `json:"href"`
	Method string          `json:"method,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// searchPage is one STAC ItemCollection page.
type searchPage struct {
	Type     string             `json:"type"`
	Features []*geojson.Feature `json:"features"`
	Links    []link             `json:"links"`
}

type client struct {
	httpClient      *http.Client
	authURL         string
	apiURL          string
	clientID        string
	credentialsFile string
	logger          *zap.Logger

	mu    sync.RWMutex
	token string
}

// NewClient создает новый клиент для UP42 каталога
func NewClient(cfg *config.CatalogConfig, logger *zap.Logger) repository.CatalogRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		authURL:         cfg.AuthURL,
		apiURL:          strings.TrimRight(cfg.APIURL, "/"),
		clientID:        cfg.ClientID,
		credentialsFile: cfg.CredentialsFile,
		logger:          logger,
	}
}

// Authenticate получает токен доступа по логину и паролю из файла
func (c *client) Authenticate(ctx context.Context) error {
	raw, err := os.ReadFile(c.credentialsFile)
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials file %s: %w", c.credentialsFile,
			apperrors.ErrCatalogAuth.WithDetails(map[string]interface{}{"reason": "username and password are required"}))
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.clientID)
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute auth request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("UP42 auth returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("status %d, body: %s: %w", resp.StatusCode, string(body), apperrors.ErrCatalogAuth)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("empty access token: %w", apperrors.ErrCatalogAuth)
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.mu.Unlock()

	c.logger.Info("Authenticated with UP42", zap.Int("expires_in", tok.ExpiresIn))
	return nil
}

// Search выполняет поиск по архиву и собирает страницы до params.Limit сцен
func (c *client) Search(ctx context.Context, params *domain.SearchParameters) (*domain.SearchResult, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	if err := validator.Validate(params); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSearch, err)
	}

	limit := params.Limit
	if limit > domain.MaxSearchResults {
		limit = domain.MaxSearchResults
	}

	body, err := json.Marshal(buildSearchRequest(params, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	target := fmt.Sprintf("%s/catalog/hosts/%s/stac/search", c.apiURL, url.PathEscape(params.Host))
	method := http.MethodPost

	fc := geojson.NewFeatureCollection()
	for pages := 0; target != ""; pages++ {
		page, err := c.fetchPage(ctx, method, target, body, token)
		if err != nil {
			return nil, err
		}

		for _, f := range page.Features {
			if len(fc.Features) >= limit {
				break
			}
			fc.Append(f)
		}

		c.logger.Debug("UP42 search page fetched",
			zap.Int("page", pages),
			zap.Int("page_features", len(page.Features)),
			zap.Int("total_features", len(fc.Features)))

		if len(fc.Features) >= limit || len(page.Features) == 0 {
			break
		}

		target = ""
		for _, l := range page.Links {
			if l.Rel != "next" || l.Href == "" {
				continue
			}
			target = l.Href
			method = http.MethodGet
			if strings.EqualFold(l.Method, http.MethodPost) {
				method = http.MethodPost
				if len(l.Body) > 0 {
					body = l.Body
				}
			}
			break
		}
	}

	c.logger.Info("UP42 search finished",
		zap.String("host", params.Host),
		zap.Strings("collections", params.Collections),
		zap.Int("scenes", len(fc.Features)))

	return domain.NewSearchResult(fc), nil
}

func (c *client) fetchPage(ctx context.Context, method, target string, body []byte, token string) (*searchPage, error) {
	var reader io.Reader
	if method == http.MethodPost {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/geo+json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("UP42 API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(raw)))
		return nil, fmt.Errorf("up42 API error: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var page searchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &page, nil
}

func buildSearchRequest(params *domain.SearchParameters, limit int) searchRequest {
	req := searchRequest{
		Datetime:    fmt.Sprintf("%sT00:00:00Z/%sT23:59:59Z", params.StartDate, params.EndDate),
		Intersects:  geojson.NewGeometry(params.Geometry),
		Collections: params.Collections,
		Limit:       limit,
		Query: map[string]map[string]any{
			"cloudCoverage": {"lte": params.MaxCloudCover},
		},
	}

	if len(params.UsageType) > 0 {
		req.Query[domain.UsageTypeProperty] = map[string]any{"in": params.UsageType}
	}

	if params.SortBy != "" {
		direction := "desc"
		if params.Ascending {
			direction = "asc"
		}
		req.SortBy = []sortField{{Field: "properties." + params.SortBy, Direction: direction}}
	}

	return req
}
