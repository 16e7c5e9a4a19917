package router

// Router classifies inbound text as a fixed command or free text.
type Router interface {
	Route(text string) Result
}

// CommandRouter matches the closed command set.
type CommandRouter struct {
	commands map[string]Command
}

var _ Router = (*CommandRouter)(nil)

// New creates a CommandRouter; empty fields in cfg fall back to the defaults.
func New(cfg Config) *CommandRouter {
	cfg.applyDefaults()

	greeting := Reply{Kind: ReplyText, Text: cfg.Greeting}
	commands := map[string]Command{
		CommandStart: {
			Name:  CommandStart,
			Reply: Reply{Kind: ReplyImage, ImageURL: cfg.StartImageURL, Caption: cfg.StartCaption},
		},
		CommandHello:  {Name: CommandHello, Reply: greeting},
		CommandHi:     {Name: CommandHi, Reply: greeting},
		CommandDonate: {Name: CommandDonate, Reply: Reply{Kind: ReplyText, Text: cfg.DonateText, ParseMode: DonateParseMode}},
		CommandHelp:   {Name: CommandHelp, Reply: Reply{Kind: ReplyText, Text: cfg.HelpText}},
	}

	return &CommandRouter{commands: commands}
}
