package volcengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/services"
)

const (
	// PlatformVolcengine is the canonical platform name.
	PlatformVolcengine = "volcengine"
	// platformLabel is the provider's Chinese product name, accepted as an alias.
	platformLabel = "火山翻译"

	// DefaultBaseURL is the public translation endpoint host.
	DefaultBaseURL = "https://translate.volcengineapi.com"

	translatePath      = "/api/v2/translate/text"
	signedHeaders      = "content-type;x-date;x-nonce"
	defaultHTTPTimeout = 15 * time.Second
	defaultSource      = "auto"
)

// Config captures the runtime settings required to talk to the provider.
type Config struct {
	Platform       string
	APIKey         string
	APISecret      string
	BaseURL        string
	TimeoutSeconds int
}

// DefaultHTTPTimeout returns the default timeout used for translation requests.
func DefaultHTTPTimeout() time.Duration {
	return defaultHTTPTimeout
}

// ResolvePlatform maps a platform name or alias to its canonical form.
func ResolvePlatform(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	switch {
	case strings.EqualFold(trimmed, PlatformVolcengine), trimmed == platformLabel:
		return PlatformVolcengine, nil
	default:
		return "", &UnsupportedPlatformError{Platform: name}
	}
}

// Client wraps the Volcengine text translation API.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for per-request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for X-Date and X-Nonce.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient validates the platform and constructs a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	platform, err := ResolvePlatform(cfg.Platform)
	if err != nil {
		return nil, err
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			Platform:       platform,
			APIKey:         strings.TrimSpace(cfg.APIKey),
			APISecret:      strings.TrimSpace(cfg.APISecret),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = DefaultBaseURL
	}
	client.endpoint = client.cfg.BaseURL + translatePath
	return client, nil
}

// Platform returns the canonical platform name.
func (c *Client) Platform() string {
	return c.cfg.Platform
}

type translateRequest struct {
	TargetLanguage string   `json:"TargetLanguage"`
	SourceLanguage string   `json:"SourceLanguage"`
	TextList       []string `json:"TextList"`
}

type translateResponse struct {
	ResponseMetadata struct {
		RequestID string `json:"RequestId"`
		Error     *struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Error"`
	} `json:"ResponseMetadata"`
	TranslationList []struct {
		Translation            *string `json:"Translation"`
		DetectedSourceLanguage string  `json:"DetectedSourceLanguage"`
	} `json:"TranslationList"`
}

// Translate sends one signed request and returns the first translation. An
// empty source language means auto detection. A response without
// translations yields the original text.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return "", services.Wrap(services.ErrValidation, "volcengine", "translate", "api key and secret required", nil)
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return "", services.Wrap(services.ErrValidation, "volcengine", "translate", "target language required", nil)
	}
	if from = strings.TrimSpace(from); from == "" {
		from = defaultSource
	}

	encoded, err := json.Marshal(translateRequest{
		TargetLanguage: to,
		SourceLanguage: from,
		TextList:       []string{text},
	})
	if err != nil {
		return "", fmt.Errorf("volcengine translate: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("volcengine translate: new request: %w", err)
	}

	now := c.now()
	date := strconv.FormatInt(now.Unix(), 10)
	nonce := strconv.FormatInt(now.UnixMilli(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Date", date)
	req.Header.Set("X-Nonce", nonce)
	req.Header.Set("X-Content-Sha256", contentSHA256(text))
	req.Header.Set("Authorization", authorization(c.cfg.APIKey, signature(c.cfg.APISecret, translatePath, date, nonce)))

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Timeout: c.timeoutDuration(), Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read body", Timeout: c.timeoutDuration(), Err: err}
	}
	logging.WithContext(ctx, c.logger).Debug("translation request completed",
		logging.Int("status", resp.StatusCode),
		logging.Int("text_chars", len([]rune(text))),
		logging.String("source_language", from),
		logging.String("target_language", to),
		logging.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Message:    fmt.Sprintf("decode response: %v", err),
		}
	}
	if apiErr := parsed.ResponseMetadata.Error; apiErr != nil && (apiErr.Code != "" || apiErr.Message != "") {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Code:       strings.TrimSpace(apiErr.Code),
			Message:    strings.TrimSpace(apiErr.Message),
		}
	}
	if len(parsed.TranslationList) == 0 || parsed.TranslationList[0].Translation == nil {
		return text, nil
	}
	return *parsed.TranslationList[0].Translation, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.httpClient.Timeout
}
