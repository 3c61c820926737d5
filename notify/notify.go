// Package notify pushes run summaries to a DingTalk-compatible incoming
// webhook. The request URL is signed per the DingTalk robot scheme:
// HMAC-SHA256 over "timestamp\nsecret", base64 then URL-encoded.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps one incoming-webhook robot.
type Client struct {
	Webhook string
	Secret  string

	// HTTPClient defaults to an 8 second timeout when nil.
	HTTPClient *http.Client
}

func New(webhook, secret string) *Client {
	return &Client{
		Webhook: webhook,
		Secret:  secret,
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

type textPayload struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
	At struct {
		AtMobiles []string `json:"atMobiles"`
		AtUserIDs []string `json:"atUserIds"`
		IsAtAll   bool     `json:"isAtAll"`
	} `json:"at"`
}

type apiResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SendText sends a plain text message through the robot.
func (c *Client) SendText(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("notify: message must not be empty")
	}
	if c.Webhook == "" {
		return fmt.Errorf("notify: webhook is not configured")
	}

	payload := textPayload{MsgType: "text"}
	payload.Text.Content = message
	payload.At.AtMobiles = []string{}
	payload.At.AtUserIDs = []string{}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.signedWebhook(time.Now()), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("notify: decode response: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("notify: API error %d: %s", result.ErrCode, result.ErrMsg)
	}
	return nil
}

// signedWebhook appends timestamp and sign query parameters when a secret is
// configured; keyword-only robots take the webhook as-is.
func (c *Client) signedWebhook(now time.Time) string {
	if c.Secret == "" {
		return c.Webhook
	}

	timestamp := strconv.FormatInt(now.UnixMilli(), 10)
	stringToSign := timestamp + "\n" + c.Secret

	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(stringToSign))
	signature := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	return c.Webhook + "&timestamp=" + timestamp + "&sign=" + signature
}
