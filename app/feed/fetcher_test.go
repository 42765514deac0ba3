package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetcher_Run(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(podcastFeed))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0", 5*time.Second)

	text, err := fetcher.Run(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if text != podcastFeed {
		t.Error("Expected body to be returned unchanged")
	}
	if gotUserAgent != "Test Agent/1.0" {
		t.Errorf("Expected user agent 'Test Agent/1.0', got '%s'", gotUserAgent)
	}
}

func TestFetcher_Run_TLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0", 5*time.Second)
	text, err := fetcher.Run(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if text != "<rss/>" {
		t.Errorf("Expected '<rss/>', got '%s'", text)
	}

	// A client with default trust must reject the test certificate
	untrusted := NewFetcher(&http.Client{}, "Test Agent/1.0", 5*time.Second)
	if _, err := untrusted.Run(context.Background(), server.URL); err == nil {
		t.Error("Expected certificate error with default trust store")
	}
}

func TestFetcher_Run_InvalidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\xef\xbb\xbf<title>Caf\xe9</title>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0", 5*time.Second)

	text, err := fetcher.Run(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := "<title>Caf�</title>"
	if text != expected {
		t.Errorf("Expected '%s', got '%q'", expected, text)
	}
}

func TestFetcher_Run_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0", 5*time.Second)

	_, err := fetcher.Run(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected error to mention status 404, got: %v", err)
	}
}

func TestFetcher_Run_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewFetcher(server.Client(), "Test Agent/1.0", 50*time.Millisecond)

	_, err := fetcher.Run(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got: %v", err)
	}
}

func TestFetcher_Run_InvalidURL(t *testing.T) {
	fetcher := NewFetcher(http.DefaultClient, "Test Agent/1.0", time.Second)

	_, err := fetcher.Run(context.Background(), "://bad-url")
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}
