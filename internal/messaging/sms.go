package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SMSSender delivers a text message to an already formatted phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// NoopSMS is used when no gateway is configured.
type NoopSMS struct{}

func (NoopSMS) Send(_ context.Context, to, _ string) error {
	logrus.WithField("to", to).Debug("SMS skipped (gateway not configured)")
	return nil
}

// GatewaySMS posts a form to an HTTP SMS gateway.
type GatewaySMS struct {
	baseURL  string
	apiKey   string
	senderID string
	client   *http.Client
}

func NewGatewaySMS(baseURL, apiKey, senderID string) *GatewaySMS {
	return &GatewaySMS{
		baseURL:  baseURL,
		apiKey:   apiKey,
		senderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GatewaySMS) Send(ctx context.Context, to, body string) error {
	start := time.Now()

	form := url.Values{}
	form.Set("senderid", g.senderID)
	form.Set("msgType", "text")
	form.Set("msg", body)
	form.Set("mobile", to)
	form.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if g.apiKey != "" {
		req.Header.Set("apikey", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway status %d: %s", resp.StatusCode, string(respBody))
	}

	logrus.WithFields(logrus.Fields{
		"to":       to,
		"duration": time.Since(start).String(),
	}).Info("SMS sent")
	return nil
}
