package router

// ReplyKind tells the caller which channel operation delivers the reply.
type ReplyKind string

const (
	ReplyText  ReplyKind = "text"
	ReplyImage ReplyKind = "image"
)

// Reply is the static answer of a command.
type Reply struct {
	Kind      ReplyKind
	Text      string
	ParseMode string
	ImageURL  string
	Caption   string
}

// Command is a matched command and its reply.
type Command struct {
	Name  string
	Reply Reply
}

// Result is the outcome of Route. Matched false means the text goes to the
// conversation engine.
type Result struct {
	Matched bool
	Command Command
}

// Config holds the configurable reply content.
type Config struct {
	StartImageURL string
	StartCaption  string
	Greeting      string
	DonateText    string
	HelpText      string
}

func (c *Config) applyDefaults() {
	if c.StartImageURL == "" {
		c.StartImageURL = DefaultStartImageURL
	}
	if c.StartCaption == "" {
		c.StartCaption = DefaultStartCaption
	}
	if c.Greeting == "" {
		c.Greeting = DefaultGreeting
	}
	if c.DonateText == "" {
		c.DonateText = DefaultDonateText
	}
	if c.HelpText == "" {
		c.HelpText = DefaultHelpText
	}
}
