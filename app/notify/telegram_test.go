package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNotifier_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "result": {}}`))
	}))
	defer server.Close()

	n := NewNotifier(server.Client(), "123:abc", "@draws")
	n.endpoint = server.URL

	if err := n.Send(context.Background(), "<b>Pick 3</b>"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("Expected sendMessage path with token, got '%s'", gotPath)
	}
	if gotBody["chat_id"] != "@draws" {
		t.Errorf("Expected chat_id '@draws', got '%v'", gotBody["chat_id"])
	}
	if gotBody["text"] != "<b>Pick 3</b>" {
		t.Errorf("Expected message text, got '%v'", gotBody["text"])
	}
	if gotBody["parse_mode"] != "HTML" {
		t.Errorf("Expected parse_mode 'HTML', got '%v'", gotBody["parse_mode"])
	}
	if gotBody["disable_web_page_preview"] != true {
		t.Errorf("Expected link preview to be disabled, got '%v'", gotBody["disable_web_page_preview"])
	}
}

func TestNotifier_SendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	}))
	defer server.Close()

	n := NewNotifier(server.Client(), "123:abc", "@draws")
	n.endpoint = server.URL

	err := n.Send(context.Background(), "test")
	if err == nil {
		t.Fatal("Expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("Expected error to carry API description, got: %v", err)
	}
}

func TestNotifier_SendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	n := NewNotifier(http.DefaultClient, "123:abc", "@draws")
	n.endpoint = server.URL

	if err := n.Send(context.Background(), "test"); err == nil {
		t.Error("Expected error for unreachable endpoint")
	}
}

func TestNotifier_NotConfigured(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		chatID string
	}{
		{"missing token", "", "@draws"},
		{"missing chat", "123:abc", ""},
		{"missing both", "", ""},
	}

	for _, tc := range cases {
		n := NewNotifier(http.DefaultClient, tc.token, tc.chatID)
		if n.Enabled() {
			t.Errorf("%s: expected notifier to be disabled", tc.name)
		}
		if err := n.Send(context.Background(), "test"); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got: %v", tc.name, err)
		}
	}
}
