// Package qrcode builds QR image URLs on an external renderer and tells
// the QR registry which image belongs to which menu. No QR encoding
// happens locally.
package qrcode

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	qhttp "github.com/shashiranjanraj/qrmenu/pkg/http"
)

// Renderer points at an HTTP GET endpoint that takes size and data query
// parameters and returns an image, e.g. api.qrserver.com.
type Renderer struct {
	BaseURL string
	Size    string
}

func NewRenderer(baseURL, size string) Renderer {
	return Renderer{BaseURL: baseURL, Size: size}
}

// URL returns the image URL encoding payload.
func (r Renderer) URL(payload string) string {
	q := url.Values{}
	q.Set("size", r.Size)
	q.Set("data", payload)

	sep := "?"
	if strings.Contains(r.BaseURL, "?") {
		sep = "&"
	}
	return r.BaseURL + sep + q.Encode()
}

// Notifier records a menu's QR code with the registry.
type Notifier interface {
	Notify(ctx context.Context, menuID, qrCodeURL string) error
}

// Policy decides what a failed notification means for menu creation.
type Policy string

const (
	// PolicyRequired aborts menu creation when the registry call fails.
	PolicyRequired Policy = "required"
	// PolicyBestEffort logs the failure and keeps the menu.
	PolicyBestEffort Policy = "best_effort"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyRequired, "":
		return PolicyRequired, nil
	case PolicyBestEffort, "best-effort":
		return PolicyBestEffort, nil
	default:
		return "", fmt.Errorf("qrcode: unknown registry policy %q (supported: required, best_effort)", s)
	}
}

// HTTPNotifier POSTs {menuId, qrCodeUrl} to Endpoint.
type HTTPNotifier struct {
	Endpoint string
	Timeout  time.Duration
	Attempts int
}

type registration struct {
	MenuID    string `json:"menuId"`
	QRCodeURL string `json:"qrCodeUrl"`
}

func (n *HTTPNotifier) Notify(ctx context.Context, menuID, qrCodeURL string) error {
	req := qhttp.Post(ctx, n.Endpoint).Body(registration{MenuID: menuID, QRCodeURL: qrCodeURL})
	if n.Timeout > 0 {
		req = req.Timeout(n.Timeout)
	}
	if n.Attempts > 1 {
		req = req.Retry(n.Attempts, 250*time.Millisecond)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("qrcode: notify registry: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return fmt.Errorf("qrcode: notify registry: %w", err)
	}
	return nil
}

// NopNotifier is used when no registry is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string) error { return nil }
