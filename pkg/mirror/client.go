package mirror

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/hedera-agent-go/pkg/shared"
)

const MaxTopicMessagesPageSize = 100

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

type MessageQueryOptions struct {
	SequenceNumber string
	Limit          int
	Order          string
}

// NewClient creates a mirror node client. BaseURL overrides the public
// mirror node of the configured network.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		defaultURL, err := shared.MirrorBaseURL(config.Network)
		if err != nil {
			return nil, err
		}
		baseURL = defaultURL
	}

	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := make(map[string]string, len(config.Headers))
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    strings.TrimRight(parsedBaseURL.String(), "/"),
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAccount returns the mirror node view of an account, including its
// hbar and token balances.
func (c *Client) GetAccount(ctx context.Context, accountID string) (AccountInfo, error) {
	var accountInfo AccountInfo
	normalizedAccountID := strings.TrimSpace(accountID)
	if normalizedAccountID == "" {
		return accountInfo, fmt.Errorf("account ID is required")
	}

	path := "/api/v1/accounts/" + url.PathEscape(normalizedAccountID)
	if err := c.getJSON(ctx, path, &accountInfo); err != nil {
		return accountInfo, err
	}

	return accountInfo, nil
}

func (c *Client) GetTopicInfo(ctx context.Context, topicID string) (TopicInfo, error) {
	var topicInfo TopicInfo
	normalizedTopicID := strings.TrimSpace(topicID)
	if normalizedTopicID == "" {
		return topicInfo, fmt.Errorf("topic ID is required")
	}

	path := "/api/v1/topics/" + url.PathEscape(normalizedTopicID)
	if err := c.getJSON(ctx, path, &topicInfo); err != nil {
		return topicInfo, err
	}

	return topicInfo, nil
}

// GetTopicMessages follows pagination links until the requested limit is
// reached. A zero limit reads every page.
func (c *Client) GetTopicMessages(
	ctx context.Context,
	topicID string,
	options MessageQueryOptions,
) ([]TopicMessage, error) {
	normalizedTopicID := strings.TrimSpace(topicID)
	if normalizedTopicID == "" {
		return nil, fmt.Errorf("topic ID is required")
	}
	if options.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}

	values := url.Values{}
	if options.SequenceNumber != "" {
		values.Set("sequencenumber", options.SequenceNumber)
	}
	if options.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", min(options.Limit, MaxTopicMessagesPageSize)))
	}
	if options.Order != "" {
		order := strings.ToLower(strings.TrimSpace(options.Order))
		if order != "asc" && order != "desc" {
			return nil, fmt.Errorf("order must be asc or desc")
		}
		values.Set("order", order)
	}

	endpoint := fmt.Sprintf("/api/v1/topics/%s/messages", url.PathEscape(normalizedTopicID))
	if encoded := values.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	result := make([]TopicMessage, 0)
	next := endpoint

	for next != "" {
		var page topicMessagesResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Messages...)
		if options.Limit > 0 && len(result) >= options.Limit {
			return result[:options.Limit], nil
		}
		next = page.Links.Next
	}

	return result, nil
}

// DecodeMessageData returns the raw bytes of a base64 topic message.
func DecodeMessageData(message TopicMessage) ([]byte, error) {
	if strings.TrimSpace(message.Message) == "" {
		return nil, fmt.Errorf("message payload is empty")
	}
	return base64.StdEncoding.DecodeString(message.Message)
}

// GetTransaction looks up a transaction by ID. Both the SDK form
// (0.0.2@1700000000.000000001) and the mirror form
// (0.0.2-1700000000-000000001) are accepted. A nil result means the mirror
// node has not seen the transaction yet.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	normalized := NormalizeTransactionID(transactionID)
	if normalized == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}

	var response transactionsResponse
	path := "/api/v1/transactions/" + url.PathEscape(normalized)
	if err := c.getJSON(ctx, path, &response); err != nil {
		return nil, err
	}

	if len(response.Transactions) == 0 {
		return nil, nil
	}

	return &response.Transactions[0], nil
}

// NormalizeTransactionID converts an SDK transaction ID into the dashed form
// used by mirror node paths.
func NormalizeTransactionID(transactionID string) string {
	trimmed := strings.TrimSpace(transactionID)
	payer, validStart, found := strings.Cut(trimmed, "@")
	if !found {
		return trimmed
	}
	// Drop the scheduled/nonce suffix the SDK may append.
	if index := strings.IndexAny(validStart, "?/"); index >= 0 {
		validStart = validStart[:index]
	}
	return payer + "-" + strings.Replace(validStart, ".", "-", 1)
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	requestURL := c.resolveURL(pathOrURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &StatusError{
			StatusCode: response.StatusCode,
			Path:       pathOrURL,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}

	return nil
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
