package router

// Command names.
const (
	CommandStart  = "/start"
	CommandHello  = "hello"
	CommandHi     = "hi"
	CommandDonate = "/donate"
	CommandHelp   = "/help"
)

// Reply defaults.
const (
	DefaultStartImageURL = "https://nataichat.onrender.com/natAi-logo-nobg.png"
	DefaultStartCaption  = "Welcome to the NatAI Telegram Bot!"
	DefaultGreeting      = "Hello, How can I help you today?"
	DefaultDonateText    = "Thank you for considering a donation! Here are the ways you can support me:\n1. Telebirr: `0941559518`\nYour support helps me continue my work!"
	DefaultHelpText      = "Send me any message and I'll answer it. Commands: /start, /donate, /help"

	// DonateParseMode renders the backticked account number as code.
	DonateParseMode = "Markdown"
)
