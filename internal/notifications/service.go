package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"showrunner/internal/config"
)

const userAgent = "Showrunner-Go/0.1.0"

// Service defines the notification surface exposed to the production
// pipeline.
type Service interface {
	NotifyProductionStarted(ctx context.Context, productionID, showTitle, episodeTitle string) error
	NotifyScriptReady(ctx context.Context, productionID string, chars int) error
	NotifyAudioReady(ctx context.Context, productionID string, generated, skipped, failed int) error
	NotifyProductionCompleted(ctx context.Context, productionID, directory string, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyProductionStarted(ctx context.Context, productionID, showTitle, episodeTitle string) error {
	showTitle = strings.TrimSpace(showTitle)
	episodeTitle = strings.TrimSpace(episodeTitle)
	data := payload{
		title:   "Showrunner - Production Started",
		message: fmt.Sprintf("Producing %s: %s (%s)", showTitle, episodeTitle, productionID),
		tags:    []string{"showrunner", "production", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScriptReady(ctx context.Context, productionID string, chars int) error {
	data := payload{
		title:   "Showrunner - Script Ready",
		message: fmt.Sprintf("Script ready for %s (%d chars)", productionID, chars),
		tags:    []string{"showrunner", "script", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAudioReady(ctx context.Context, productionID string, generated, skipped, failed int) error {
	var message string
	if failed == 0 {
		message = fmt.Sprintf("Audio ready for %s: %d clips generated, %d skipped", productionID, generated, skipped)
	} else {
		message = fmt.Sprintf("Audio ready for %s: %d clips generated, %d skipped, %d failed", productionID, generated, skipped, failed)
	}
	data := payload{
		title:   "Showrunner - Audio Ready",
		message: message,
		tags:    []string{"showrunner", "audio", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProductionCompleted(ctx context.Context, productionID, directory string, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}
	message := fmt.Sprintf("Production complete: %s in %s", productionID, durationText)
	if directory = strings.TrimSpace(directory); directory != "" {
		message = fmt.Sprintf("%s\nOutput: %s", message, directory)
	}
	data := payload{
		title:    "Showrunner - Complete",
		message:  message,
		tags:     []string{"showrunner", "production", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Showrunner - Error",
		message:  builder.String(),
		tags:     []string{"showrunner", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Showrunner - Test",
		message:  "Notification system test",
		tags:     []string{"showrunner", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyProductionStarted(context.Context, string, string, string) error { return nil }
func (noopService) NotifyScriptReady(context.Context, string, int) error                  { return nil }
func (noopService) NotifyAudioReady(context.Context, string, int, int, int) error         { return nil }
func (noopService) NotifyProductionCompleted(context.Context, string, string, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
