package api

import (
	"io"
	"net/http"
	"net/url"
	"testing"
)

func TestRequestMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", http.MethodGet, false},
		{"get", http.MethodGet, false},
		{"PATCH", http.MethodPatch, false},
		{"put", http.MethodPut, false},
		{"POST", http.MethodPost, false},
		{"DELETE", "", true},
	}
	for _, tt := range tests {
		got, err := Request{Method: tt.in}.method()
		if (err != nil) != tt.wantErr {
			t.Errorf("method(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("method(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequestTarget(t *testing.T) {
	base := "https://api.lock.space/v1"
	tests := []struct {
		req  Request
		want string
	}{
		{Request{Path: "user"}, base + "/user"},
		{Request{Path: "/user"}, base + "/user"},
		{Request{Path: "staking", Query: url.Values{"strategy": {"Masternode"}}}, base + "/staking?strategy=Masternode"},
		{Request{Path: "staking/balance?userAddress=x", Query: url.Values{"a": {"1"}}}, base + "/staking/balance?userAddress=x&a=1"},
	}
	for _, tt := range tests {
		if got := tt.req.target(base); got != tt.want {
			t.Errorf("target() = %q, want %q", got, tt.want)
		}
	}
}

func TestRequestBody_JSON(t *testing.T) {
	r, ct, err := Request{Body: map[string]int{"amount": 10}}.body()
	if err != nil {
		t.Fatalf("body() error = %v", err)
	}
	if ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	b, _ := io.ReadAll(r)
	if string(b) != `{"amount":10}` {
		t.Errorf("body = %s", b)
	}
}

func TestRequestBody_NilJSONStillTyped(t *testing.T) {
	r, ct, err := Request{}.body()
	if err != nil {
		t.Fatalf("body() error = %v", err)
	}
	if r != nil {
		t.Error("nil body should produce no reader")
	}
	if ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestRequestBody_Raw(t *testing.T) {
	r, ct, err := Request{Body: "raw", NoJSON: true, ContentType: "text/plain"}.body()
	if err != nil {
		t.Fatalf("body() error = %v", err)
	}
	b, _ := io.ReadAll(r)
	if string(b) != "raw" || ct != "text/plain" {
		t.Errorf("body = %q, content type = %q", b, ct)
	}
}

func TestRequestBody_Unmarshalable(t *testing.T) {
	if _, _, err := (Request{Body: make(chan int)}).body(); err == nil {
		t.Error("expected marshal error for channel body")
	}
}
