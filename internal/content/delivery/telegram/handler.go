package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/content"
	pkgLog "realty-content-engine/pkg/log"
	pkgResponse "realty-content-engine/pkg/response"
	pkgTelegram "realty-content-engine/pkg/telegram"
)

type handler struct {
	l   pkgLog.Logger
	uc  content.UseCase
	bot *pkgTelegram.Bot
}

// telegramMessageLimit is Telegram's hard cap per message.
const telegramMessageLimit = 4096

var dataURIImageRe = regexp.MustCompile(`!\[[^\]]*\]\((data:image/[a-z]+;base64,[A-Za-z0-9+/=]+)\)`)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine; the generation pipeline (guardrails + LLM +
// optional image call) routinely outlives Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong while handling your request. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message. Each chat maps to
// its own conversation session, so follow-ups keep their context.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"👋 Welcome to the *Realty Content Engine*!\n\nTell me what to create and I will write it for you:\n• 📝 Blog posts\n• 💼 LinkedIn posts\n• 📸 Instagram posts with images\n• 🔍 Market research\n• 📋 Content strategies\n\n_Example: \"Write a blog post about staging a home for a spring sale\"_",
			"Markdown",
		)
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"*How to use:*\n\nDescribe the content you need in plain language, for example:\n`Create a LinkedIn post about first-time buyer mistakes`\n`Generate an image of a sunlit craftsman bungalow`\n\nI route your request to the right specialist and reply here.",
			"Markdown",
		)
	}

	if err := h.bot.SendMessage(msg.Chat.ID, "⏳ Working on it..."); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	output := h.uc.Run(ctx, content.RunInput{
		UserInput: msg.Text,
		SessionID: fmt.Sprintf("telegram_%d", msg.Chat.ID),
	})

	if !output.Success {
		return h.bot.SendMessage(msg.Chat.ID, output.Error)
	}

	return h.sendContent(ctx, msg.Chat.ID, output.Content)
}

// sendContent delivers generated content, uploading inline data-URI
// images as photos and chunking long text to Telegram's message limit.
func (h *handler) sendContent(ctx context.Context, chatID int64, text string) error {
	if m := dataURIImageRe.FindStringSubmatch(text); m != nil {
		if photo, caption, ok := decodeDataURI(m[1], text); ok {
			if err := h.bot.SendPhoto(chatID, photo, caption); err == nil {
				return nil
			}
			h.l.Warnf(ctx, "telegram handler: photo upload failed, falling back to text")
			text = dataURIImageRe.ReplaceAllString(text, "(image omitted)")
		}
	}

	for _, chunk := range splitMessage(text, telegramMessageLimit) {
		if err := h.bot.SendMessage(chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// decodeDataURI extracts the photo bytes and builds a caption from the
// surrounding text.
func decodeDataURI(uri, fullText string) (photo []byte, caption string, ok bool) {
	idx := strings.Index(uri, "base64,")
	if idx < 0 {
		return nil, "", false
	}

	photo, err := base64.StdEncoding.DecodeString(uri[idx+len("base64,"):])
	if err != nil || len(photo) == 0 {
		return nil, "", false
	}

	caption = strings.TrimSpace(dataURIImageRe.ReplaceAllString(fullText, ""))
	if len(caption) > 1024 { // Telegram caption cap
		caption = caption[:1021] + "..."
	}
	return photo, caption, true
}

// splitMessage breaks text into chunks that fit one Telegram message,
// preferring paragraph boundaries.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
