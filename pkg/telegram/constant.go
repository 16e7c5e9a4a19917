package telegram

const (
	defaultAPIBase = "https://api.telegram.org"

	// MaxMessageLength is the Bot API limit for a single text message, in runes.
	MaxMessageLength = 4096
	// MaxCaptionLength is the Bot API limit for a photo caption, in runes.
	MaxCaptionLength = 1024

	ParseModeMarkdown   = "Markdown"
	ParseModeMarkdownV2 = "MarkdownV2"
	ParseModeHTML       = "HTML"

	ChatActionTyping = "typing"

	// SecretTokenHeader carries the secret registered through setWebhook.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
)
