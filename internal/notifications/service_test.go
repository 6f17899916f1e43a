package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"showrunner/internal/config"
	"showrunner/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyProductionStarted(context.Background(), "house_0_20250314_0926", "The AI House", "Pilot"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "production started",
			send: func(svc notifications.Service) error {
				return svc.NotifyProductionStarted(context.Background(), "house_0_20250314_0926", "The AI House", "Pilot")
			},
			expectTitle:   "Showrunner - Production Started",
			expectMessage: "Producing The AI House: Pilot (house_0_20250314_0926)",
			expectTags:    "showrunner,production,started",
		},
		{
			name: "audio ready with failures",
			send: func(svc notifications.Service) error {
				return svc.NotifyAudioReady(context.Background(), "house_0_20250314_0926", 40, 3, 2)
			},
			expectTitle:   "Showrunner - Audio Ready",
			expectMessage: "Audio ready for house_0_20250314_0926: 40 clips generated, 3 skipped, 2 failed",
			expectTags:    "showrunner,audio,completed",
		},
		{
			name: "production completed",
			send: func(svc notifications.Service) error {
				return svc.NotifyProductionCompleted(context.Background(), "house_0_20250314_0926", "/outputs/house_0_20250314_0926", 93*time.Second)
			},
			expectTitle:    "Showrunner - Complete",
			expectMessage:  "Production complete: house_0_20250314_0926 in 1m33s\nOutput: /outputs/house_0_20250314_0926",
			expectTags:     "showrunner,production,completed",
			expectPriority: "high",
		},
		{
			name: "error",
			send: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("ffmpeg exited 1"), "assembly")
			},
			expectTitle:    "Showrunner - Error",
			expectMessage:  "Error with assembly: ffmpeg exited 1",
			expectTags:     "showrunner,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for http 403")
	}
}
