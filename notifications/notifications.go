package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/logger"
	"github.com/gen2brain/beeep"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config: cfg,
	}
}

// NotifyPublishFailed alerts the operator that a scheduled publish attempt
// failed. The content stays eligible or is marked failed per the scheduler's
// rules; this is informational only.
func (ns *NotificationService) NotifyPublishFailed(kind, detail string) {
	if !ns.config.Notifications.Enabled {
		return
	}

	message := fmt.Sprintf("Failed to publish %s: %s", kind, detail)
	ns.dispatch("Tipcast Publish Failed", message, 15158332) // red
}

// NotifyAuthExpired alerts the operator that the platform rejected the
// token. Not auto-recoverable; posting stalls until the token is replaced.
func (ns *NotificationService) NotifyAuthExpired(platform string) {
	if !ns.config.Notifications.Enabled {
		return
	}

	message := fmt.Sprintf("%s access token expired or invalid. Update the config and restart.", platform)
	ns.dispatch("Tipcast Auth Expired", message, 15105570) // orange
}

// NotifyContentExhausted alerts the operator that the MCQ pool has no
// unposted questions left.
func (ns *NotificationService) NotifyContentExhausted() {
	if !ns.config.Notifications.Enabled {
		return
	}

	ns.dispatch("Tipcast Content Exhausted", "Every MCQ in the library has been posted. Add new questions.", 3447003) // blue
}

func (ns *NotificationService) dispatch(title, message string, color int) {
	if ns.config.Notifications.SystemNotify {
		ns.sendSystemNotification(message, title)
	}

	if ns.config.Notifications.DiscordWebhook != "" {
		ns.sendDiscordNotification(title, message, color)
	}

	if ns.config.Notifications.TelegramBotToken != "" && ns.config.Notifications.TelegramChatID != "" {
		ns.sendTelegramNotification(fmt.Sprintf("%s\n%s", title, message))
	}
}

func (ns *NotificationService) sendSystemNotification(message, title string) {
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Logger.Printf("Failed to send system notification: %v", err)
	}
}

func (ns *NotificationService) sendDiscordNotification(title, message string, color int) {
	type DiscordEmbed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Color       int    `json:"color"`
		Timestamp   string `json:"timestamp"`
	}

	type DiscordWebhookPayload struct {
		Embeds []DiscordEmbed `json:"embeds"`
	}

	payload := DiscordWebhookPayload{
		Embeds: []DiscordEmbed{{
			Title:       title,
			Description: message,
			Color:       color,
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Printf("Failed to marshal Discord payload: %v", err)
		return
	}

	resp, err := http.Post(ns.config.Notifications.DiscordWebhook, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		logger.Logger.Printf("Failed to send Discord notification: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Logger.Printf("Discord webhook returned status: %d", resp.StatusCode)
	}
}

func (ns *NotificationService) sendTelegramNotification(message string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", ns.config.Notifications.TelegramBotToken)
	type TelegramPayload struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}
	payload := TelegramPayload{
		ChatID:    ns.config.Notifications.TelegramChatID,
		Text:      message,
		ParseMode: "HTML",
	}
	jsonPayload, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		logger.Logger.Printf("Failed to send Telegram notification: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Logger.Printf("Telegram API returned status: %d", resp.StatusCode)
	}
}
