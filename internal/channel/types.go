package channel

// SendOptions tunes how a text message is rendered. Empty ParseMode sends plain text.
type SendOptions struct {
	ParseMode string
}
