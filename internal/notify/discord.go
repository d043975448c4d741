package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/adposting/internal/metrics"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // accepted
	colorYellow = 0xF1C40F // pending
	colorRed    = 0xE74C3C // failed

	maxEmbeds = 10
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendStatusChange sends a single change as a Discord embed.
func (d *DiscordNotifier) SendStatusChange(ctx context.Context, change *StatusChange) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(change)},
	})
}

// SendBatch sends multiple changes as a single Discord message.
func (d *DiscordNotifier) SendBatch(ctx context.Context, changes []StatusChange) error {
	if len(changes) == 0 {
		return nil
	}

	limit := min(len(changes), maxEmbeds)
	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&changes[i]))
	}

	if len(changes) > maxEmbeds {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more status changes", len(changes)-maxEmbeds),
			Color:       colorYellow,
			Description: "Run `adpost journal list` for the full list.",
		})
	}

	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(change *StatusChange) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Advertisement %s: %s", change.To, change.JobTitle),
		URL:   change.Location,
		Color: statusColor(change.To),
		Fields: []discordEmbedField{
			{Name: "Creation ID", Value: change.CreationID, Inline: true},
			{Name: "Advertisement ID", Value: change.AdvertisementID, Inline: true},
			{Name: "Previous", Value: string(change.From), Inline: true},
		},
	}

	if change.RequestID != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Request ID", Value: change.RequestID, Inline: true,
		})
	}

	if len(change.Errors) > 0 {
		lines := make([]string, 0, len(change.Errors))
		for _, e := range change.Errors {
			line := e.Code
			if e.Field != "" {
				line = e.Field + ": " + line
			}
			if e.Message != "" {
				line += " (" + e.Message + ")"
			}
			lines = append(lines, line)
		}
		embed.Description = strings.Join(lines, "\n")
	}

	return embed
}

func statusColor(s domain.ProcessingStatus) int {
	switch s {
	case domain.ProcessingAccepted:
		return colorGreen
	case domain.ProcessingFailed:
		return colorRed
	default:
		return colorYellow
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
