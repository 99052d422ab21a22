package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/restore"
)

// HTTPClient implements VaultClient using the quotevault HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Lineages ---

func (c *HTTPClient) ListLineages(ctx context.Context) ([]string, error) {
	var resp struct {
		Lineages []string `json:"lineages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/lineages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lineages, nil
}

func (c *HTTPClient) CreateLineage(ctx context.Context, req *CreateLineageRequest) (*model.ConfigVersion, error) {
	var version model.ConfigVersion
	if err := c.doJSON(ctx, http.MethodPost, "/v1/lineages", req, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// --- Versions ---

func (c *HTTPClient) ListVersions(ctx context.Context, lineage string) ([]*model.ConfigVersion, error) {
	var resp struct {
		Versions []*model.ConfigVersion `json:"versions"`
	}
	path := "/v1/lineages/" + url.PathEscape(lineage) + "/versions"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Versions, nil
}

func (c *HTTPClient) GetVersion(ctx context.Context, id string) (*model.ConfigVersion, error) {
	var version model.ConfigVersion
	if err := c.doJSON(ctx, http.MethodGet, "/v1/versions/"+url.PathEscape(id), nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func (c *HTTPClient) GetActiveVersion(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	var version model.ConfigVersion
	path := "/v1/lineages/" + url.PathEscape(lineage) + "/active"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// --- Packages ---

func (c *HTTPClient) ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error) {
	var resp struct {
		Packages []*model.PackageRecord `json:"packages"`
	}
	path := "/v1/versions/" + url.PathEscape(versionID) + "/packages"
	if activeOnly {
		path += "?active=true"
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

func (c *HTTPClient) CreatePackage(ctx context.Context, versionID string, req *CreatePackageRequest) (*model.PackageRecord, error) {
	var pkg model.PackageRecord
	path := "/v1/versions/" + url.PathEscape(versionID) + "/packages"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *HTTPClient) GetPackage(ctx context.Context, id string) (*model.PackageRecord, error) {
	var pkg model.PackageRecord
	if err := c.doJSON(ctx, http.MethodGet, "/v1/packages/"+url.PathEscape(id), nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *HTTPClient) UpdatePackage(ctx context.Context, id string, req *UpdatePackageRequest) (*model.PackageRecord, error) {
	var pkg model.PackageRecord
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/packages/"+url.PathEscape(id), req, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *HTTPClient) DeletePackage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/packages/"+url.PathEscape(id), nil, nil)
}

// --- Restore ---

func (c *HTTPClient) PreviewRestore(ctx context.Context, versionID string) (*restore.PreviewResult, error) {
	var result restore.PreviewResult
	path := "/v1/versions/" + url.PathEscape(versionID) + "/preview"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ExecuteRestore(ctx context.Context, versionID string, strategy model.RestoreStrategy, actor string) (*restore.ExecuteResult, error) {
	body := map[string]string{
		"strategy": strategy.String(),
		"actor":    actor,
	}
	var result restore.ExecuteResult
	path := "/v1/versions/" + url.PathEscape(versionID) + "/restore"
	if err := c.doJSON(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Export ---

func (c *HTTPClient) Export(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/export", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(data)}
	}
	return data, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
