package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultAddress is the Azure DevOps Services host
	DefaultAddress = "https://dev.azure.com"
	// DefaultAPIVersion is sent as the api-version query parameter unless the request sets one
	DefaultAPIVersion = "7.1"

	sessionHeader = "X-TFS-Session"
)

// Logger receives request and error lines from the client
type Logger interface {
	Debugf(msg string, args ...any)
	Errorf(msg string, args ...any)
}

type Config struct {
	// Address is the scheme and host of the Azure DevOps API, defaults to DefaultAddress
	Address      string
	Organization string
	Project      string
	Token        string
	// APIVersion defaults to DefaultAPIVersion
	APIVersion string
	// SessionID is sent on every request so the calls of one run can be correlated server side
	SessionID  string
	HTTPClient *http.Client
	Logger     Logger
}

// Client talks to the distributed task variable group API of a single organization and project
type Client struct {
	address      string
	organization string
	project      string
	token        string
	apiVersion   string
	sessionID    string

	http *http.Client
	log  Logger
}

// ResponseError is returned for any non-2xx API response
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "<empty>"
	}

	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), msg)
}

// NewClient validates the config and returns a client
func NewClient(config *Config) (*Client, error) {
	if config.Organization == "" {
		return nil, fmt.Errorf("organization must be set")
	}

	if config.Project == "" {
		return nil, fmt.Errorf("project must be set")
	}

	if config.Token == "" {
		return nil, fmt.Errorf("token must be set")
	}

	address := strings.TrimRight(config.Address, "/")
	if address == "" {
		address = DefaultAddress
	}

	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse address %q: %w", address, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("address %q must include a scheme and host", address)
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}

	log := config.Logger
	if log == nil {
		log = nopLogger{}
	}

	return &Client{
		address:      address,
		organization: config.Organization,
		project:      config.Project,
		token:        config.Token,
		apiVersion:   apiVersion,
		sessionID:    config.SessionID,
		http:         httpClient,
		log:          log,
	}, nil
}

// GetVariableGroup returns the first variable group matching name, or nil if there is none
func (c *Client) GetVariableGroup(ctx context.Context, name string) (*VariableGroup, error) {
	var list variableGroupList

	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("%s/_apis/distributedtask/variablegroups", url.PathEscape(c.project)),
		&variableGroupListOptions{GroupName: name}, nil, &list)
	if err != nil {
		return nil, err
	}

	if len(list.Value) == 0 {
		return nil, nil
	}

	return &list.Value[0], nil
}

// AddVariableGroup creates a variable group shared with the configured project
func (c *Client) AddVariableGroup(ctx context.Context, group *VariableGroup) (*VariableGroup, error) {
	body, err := c.addProjectReference(group)
	if err != nil {
		return nil, err
	}

	created := &VariableGroup{}

	if err := c.do(ctx, http.MethodPost, "_apis/distributedtask/variablegroups", nil, body, created); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateVariableGroup replaces the variable group with the passed ID
func (c *Client) UpdateVariableGroup(ctx context.Context, id int, group *VariableGroup) (*VariableGroup, error) {
	body, err := c.addProjectReference(group)
	if err != nil {
		return nil, err
	}

	updated := &VariableGroup{}

	err = c.do(ctx, http.MethodPut, "_apis/distributedtask/variablegroups/"+strconv.Itoa(id), nil, body, updated)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *Client) do(ctx context.Context, method string, path string, opts any, body any, out any) error {
	q := url.Values{}

	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("failed to encode query parameters: %w", err)
		}

		q = v
	}

	if q.Get("api-version") == "" {
		q.Set("api-version", c.apiVersion)
	}

	var reqBody io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reqBody = bytes.NewReader(b)
	}

	u := fmt.Sprintf("%s/%s/%s?%s", c.address, url.PathEscape(c.organization), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.sessionID != "" {
		req.Header.Set(sessionHeader, c.sessionID)
	}

	c.log.Debugf("%s %s", method, u)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("failed to read %d response body: %w", res.StatusCode, err)
		}

		resErr := &ResponseError{
			Method:     method,
			URL:        u,
			StatusCode: res.StatusCode,
			Message:    strings.TrimSpace(string(b)),
		}

		msg := resErr.Message
		if msg == "" {
			msg = "<empty>"
		}

		c.log.Errorf("Error status: %d, message: %s", res.StatusCode, msg)

		return resErr
	}

	c.log.Debugf("Response status: %d", res.StatusCode)

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, u, err)
	}

	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}
