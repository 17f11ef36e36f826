package router

// Event is one inbound update already classified by the transport.
// Implementations: Command, ButtonPress, FreeText.
type Event interface {
	event()
}

// CommandName is a registered slash command without the leading slash.
type CommandName string

const (
	CmdStart    CommandName = "start"
	CmdHelp     CommandName = "help"
	CmdFeatures CommandName = "features"
	CmdHowToUse CommandName = "how_to_use"
	CmdRate     CommandName = "rate"
	CmdWebApp   CommandName = "web_app"
)

// Callback tokens carried by the main menu buttons.
const (
	TokenFeatures = "cmd_features"
	TokenHowToUse = "cmd_how_to_use"
)

type Command struct {
	Name     CommandName
	UserName string
	UserID   int64
}

type ButtonPress struct {
	Token string
}

type FreeText struct {
	Content  string
	UserName string
}

func (Command) event()     {}
func (ButtonPress) event() {}
func (FreeText) event()    {}

type Format int

const (
	FormatMarkdown Format = iota
	FormatPlain
)

// Response is what the bot says back. Then, when set, is sent right after.
type Response struct {
	Text     string
	Format   Format
	Keyboard *Keyboard
	// Replace asks the transport to edit the message whose button was pressed.
	Replace  bool
	Then     *Response
}

type KeyboardKind int

const (
	KeyboardInline KeyboardKind = iota
	KeyboardReply
)

type Keyboard struct {
	Kind KeyboardKind
	Rows [][]Button
}

type ButtonKind int

const (
	// ButtonCallback posts Data back as a callback query.
	ButtonCallback ButtonKind = iota
	// ButtonURL opens Data in the browser.
	ButtonURL
	// ButtonWebApp launches the mini app at Data inside the client.
	ButtonWebApp
	// ButtonText sends Label as a message (reply keyboards only).
	ButtonText
)

type Button struct {
	Label string
	Kind  ButtonKind
	Data  string
}

// Buttons returns every button of the keyboard in row order.
func (k *Keyboard) Buttons() []Button {
	if k == nil {
		return nil
	}
	var out []Button
	for _, row := range k.Rows {
		out = append(out, row...)
	}
	return out
}
