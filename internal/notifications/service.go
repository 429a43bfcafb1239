package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flipbook/internal/config"
)

const userAgent = "Flipbook/0.1.0"

// Service defines the notification surface exposed to flipbook components.
type Service interface {
	NotifyProjectCreated(ctx context.Context, name string) error
	NotifyProjectDeleted(ctx context.Context, name string) error
	NotifyFrameCaptured(ctx context.Context, name string, frameCount int) error
	NotifyExportCompleted(ctx context.Context, name string, frameCount, sizeBytes int) error
	NotifyPersistenceWarning(ctx context.Context, err error) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		events:   cfg.Notifications,
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
	events   config.Notifications
}

func (n *ntfyService) NotifyProjectCreated(ctx context.Context, name string) error {
	if !n.events.Projects {
		return nil
	}
	data := payload{
		title:   "Flipbook - Project Created",
		message: fmt.Sprintf("New project: %s", strings.TrimSpace(name)),
		tags:    []string{"flipbook", "project", "created"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProjectDeleted(ctx context.Context, name string) error {
	if !n.events.Projects {
		return nil
	}
	data := payload{
		title:   "Flipbook - Project Deleted",
		message: fmt.Sprintf("Deleted project: %s", strings.TrimSpace(name)),
		tags:    []string{"flipbook", "project", "deleted"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyFrameCaptured(ctx context.Context, name string, frameCount int) error {
	if !n.events.Capture {
		return nil
	}
	data := payload{
		title:   "Flipbook - Frame Captured",
		message: fmt.Sprintf("%s now has %d frames", strings.TrimSpace(name), frameCount),
		tags:    []string{"flipbook", "capture"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, name string, frameCount, sizeBytes int) error {
	if !n.events.Export {
		return nil
	}
	data := payload{
		title:    "Flipbook - Export Complete",
		message:  fmt.Sprintf("Animation ready: %s (%d frames, %d bytes)", strings.TrimSpace(name), frameCount, sizeBytes),
		tags:     []string{"flipbook", "export", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPersistenceWarning(ctx context.Context, err error) error {
	if !n.events.Errors {
		return nil
	}
	detail := "unknown"
	if err != nil {
		detail = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:   "Flipbook - Save Warning",
		message: fmt.Sprintf("Projects kept in memory but could not be saved: %s", detail),
		tags:    []string{"flipbook", "persistence", "warning"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.events.Errors {
		return nil
	}
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
		title:    "Flipbook - Error",
		message:  builder.String(),
		tags:     []string{"flipbook", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Flipbook - Test",
		message:  "Notification system test",
		tags:     []string{"flipbook", "test"},
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

func (noopService) NotifyProjectCreated(context.Context, string) error          { return nil }
func (noopService) NotifyProjectDeleted(context.Context, string) error          { return nil }
func (noopService) NotifyFrameCaptured(context.Context, string, int) error      { return nil }
func (noopService) NotifyExportCompleted(context.Context, string, int, int) error { return nil }
func (noopService) NotifyPersistenceWarning(context.Context, error) error       { return nil }
func (noopService) NotifyError(context.Context, error, string) error            { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
