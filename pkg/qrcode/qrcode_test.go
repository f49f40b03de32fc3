package qrcode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/pkg/qrcode"
)

func TestRendererURLEncodesPayload(t *testing.T) {
	r := qrcode.NewRenderer("https://api.qrserver.com/v1/create-qr-code/", "200x200")
	menuURL := "http://localhost:8080/menu/0192f0c1-aaaa"

	got := r.URL(menuURL)

	assert.Contains(t, got, "size=200x200")
	assert.Contains(t, got, "data="+url.QueryEscape(menuURL))

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, menuURL, u.Query().Get("data"))
}

func TestRendererKeepsExistingQuery(t *testing.T) {
	r := qrcode.NewRenderer("https://qr.example.com/render?format=png", "300x300")
	assert.Contains(t, r.URL("x"), "?format=png&")
}

func TestParsePolicy(t *testing.T) {
	p, err := qrcode.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, qrcode.PolicyRequired, p)

	p, err = qrcode.ParsePolicy("Best_Effort")
	require.NoError(t, err)
	assert.Equal(t, qrcode.PolicyBestEffort, p)

	_, err = qrcode.ParsePolicy("sometimes")
	assert.Error(t, err)
}

func TestHTTPNotifier(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	n := &qrcode.HTTPNotifier{Endpoint: srv.URL}
	require.NoError(t, n.Notify(context.Background(), "m1", "https://qr/x"))
	assert.Equal(t, map[string]string{"menuId": "m1", "qrCodeUrl": "https://qr/x"}, got)
}

func TestHTTPNotifierFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := &qrcode.HTTPNotifier{Endpoint: srv.URL}
	assert.Error(t, n.Notify(context.Background(), "m1", "https://qr/x"))
}
