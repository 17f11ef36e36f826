package router

import (
	"fmt"
	"strings"

	"github.com/eliseohh/qrcrafterbot/internal/markup"
)

const (
	DefaultWebAppURL = "https://qrcrafter.vercel.app"
	DefaultRatingURL = "https://play.google.com/store/apps/details?id=com.appkadag.qrcrafter"
)

// Links are the two external URLs the responses point at.
type Links struct {
	WebApp string
	Rating string
}

// Router maps events to canned responses. It holds no mutable state and is
// safe for concurrent use.
type Router struct {
	links Links
}

func New(links Links) *Router {
	if links.WebApp == "" {
		links.WebApp = DefaultWebAppURL
	}
	if links.Rating == "" {
		links.Rating = DefaultRatingURL
	}
	return &Router{links: links}
}

// Route never fails: every event resolves to some response.
func (r *Router) Route(ev Event) Response {
	switch e := ev.(type) {
	case Command:
		return r.command(e)
	case ButtonPress:
		return r.button(e)
	case FreeText:
		return r.freeText(e)
	default:
		return r.unknownAction()
	}
}

func (r *Router) command(c Command) Response {
	switch c.Name {
	case CmdStart:
		return r.start(c.UserName, c.UserID)
	case CmdHelp:
		return helpResponse()
	case CmdFeatures:
		return featuresResponse()
	case CmdHowToUse:
		return howToUseResponse()
	case CmdRate:
		return r.rate()
	case CmdWebApp:
		return r.webApp()
	default:
		// The transport only dispatches registered names.
		return helpResponse()
	}
}

func (r *Router) button(b ButtonPress) Response {
	switch b.Token {
	case TokenFeatures:
		return featuresResponse()
	case TokenHowToUse:
		return howToUseResponse()
	default:
		return r.unknownAction()
	}
}

// intent is one free-text category; categories are tried in slice order.
type intent struct {
	name     string
	keywords []string
	reply    func(r *Router, userName string) Response
}

var intents = []intent{
	{
		name:     "capabilities",
		keywords: []string{"what can you generate", "what can you do", "types of qr codes"},
		reply:    func(*Router, string) Response { return capabilitiesResponse() },
	},
	{
		name:     "wifi",
		keywords: []string{"wi-fi", "wifi", "connect"},
		reply:    func(*Router, string) Response { return wifiResponse() },
	},
	{
		name:     "contact",
		keywords: []string{"vcard", "contact", "business card"},
		reply:    func(*Router, string) Response { return contactResponse() },
	},
	{
		name:     "greeting",
		keywords: []string{"hello", "hi", "hey", "greet"},
		reply:    func(_ *Router, name string) Response { return greetingResponse(name) },
	},
}

// Intent reports which free-text category content falls into, or
// "fallback" when none matches.
func Intent(content string) string {
	if in, ok := matchIntent(content); ok {
		return in.name
	}
	return "fallback"
}

func matchIntent(content string) (intent, bool) {
	text := strings.ToLower(content)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(text, kw) {
				return in, true
			}
		}
	}
	return intent{}, false
}

func (r *Router) freeText(t FreeText) Response {
	if in, ok := matchIntent(t.Content); ok {
		return in.reply(r, t.UserName)
	}
	return redirectResponse()
}

// MainMenu is the inline keyboard offered under the start message.
func (r *Router) MainMenu() *Keyboard {
	return &Keyboard{
		Kind: KeyboardInline,
		Rows: [][]Button{
			{{Label: "🚀 Launch QRCrafter Mini App", Kind: ButtonWebApp, Data: r.links.WebApp}},
			{
				{Label: "❓ Features", Kind: ButtonCallback, Data: TokenFeatures},
				{Label: "💡 How to Use", Kind: ButtonCallback, Data: TokenHowToUse},
			},
		},
	}
}

// CommandMenu is the persistent reply keyboard with every command.
func CommandMenu() *Keyboard {
	text := func(s string) Button { return Button{Label: s, Kind: ButtonText} }
	return &Keyboard{
		Kind: KeyboardReply,
		Rows: [][]Button{
			{text("/start"), text("/help"), text("/features")},
			{text("/how_to_use"), text("/rate"), text("/web_app")},
			{text("What can you generate?")},
		},
	}
}

// CommandInfo describes a command for the client-side command menu.
type CommandInfo struct {
	Name        CommandName
	Description string
}

func Commands() []CommandInfo {
	return []CommandInfo{
		{CmdStart, "Welcome message and main menu"},
		{CmdHelp, "List all commands"},
		{CmdFeatures, "QR code types the Mini App supports"},
		{CmdHowToUse, "Step-by-step Mini App instructions"},
		{CmdRate, "Rate QRCrafter"},
		{CmdWebApp, "Open the QRCrafter Mini App"},
	}
}

func (r *Router) start(userName string, userID int64) Response {
	greeting := fmt.Sprintf("👋 Hello, %s! Welcome to *QRCrafter Bot*.\n\n"+
		"Your Telegram ID is: `%d`\n\n"+
		"I'm here to help you create beautiful and functional QR codes using our full-featured Mini App. "+
		"It runs perfectly right inside Telegram!", markup.Escape(userName), userID)

	return Response{
		Text:     greeting,
		Keyboard: CommandMenu(),
		Then: &Response{
			Text: "*Choose your next action:*\n" +
				"1. *Launch the Mini App* to start crafting your QR code now.\n" +
				"2. *Use the commands* on the keyboard below for more information.",
			Keyboard: r.MainMenu(),
		},
	}
}

func helpResponse() Response {
	return Response{Text: "*📚 QRCrafter Bot Help & Commands*\n\n" +
		"*Main Commands:*\n" +
		"• `/start` - Get the welcome message and personalized greeting.\n" +
		"• `/help` - Show this comprehensive list of commands.\n" +
		"• `/rate` - Share your feedback and rate the bot/app.\n\n" +
		"*Information & Utility:*\n" +
		"• `/features` - See the full list of QR code types we can generate.\n" +
		"• `/how_to_use` - Step-by-step instructions for using the Mini App.\n" +
		"• `/web_app` - Get the direct link and quick details about the Mini App.\n\n" +
		"*Q&A:*\n" +
		"• You can also ask questions like 'What can you generate?' or 'How do I make a Wi-Fi QR code?'"}
}

func featuresResponse() Response {
	return Response{Text: "✨ *QRCrafter Full Features List* ✨\n\n" +
		"The QRCrafter Mini App is an advanced QR code generator supporting a wide range of data types:\n" +
		"• *Connectivity:* Wi-Fi access (SSID, password, encryption type).\n" +
		"• *Contact:* V-Card (virtual business cards for easy contact sharing).\n" +
		"• *Web:* URLs, Website Links, and Social Media profiles.\n" +
		"• *Communication:* Phone Numbers, SMS, and Email messages.\n" +
		"• *General:* Plain Text (for notes, keys, or short messages).\n" +
		"• *Customization:* Full control over colors, background, and dark mode for a personalized look."}
}

func howToUseResponse() Response {
	return Response{Text: "📖 *How to Use QRCrafter Mini App*\n\n" +
		"The easiest way is to use the Mini App inside Telegram:\n\n" +
		"1. *Launch the App:* Click the *'🚀 Launch QRCrafter Mini App'* button from the main menu (or use `/web_app`).\n" +
		"2. *Select Type:* Choose the data type you need (e.g., _URL_, _V-Card_, or _Wi-Fi_).\n" +
		"3. *Input Details:* Fill in the required fields (like the URL, or contact details).\n" +
		"4. *Customize:* Adjust colors or background using the in-app tools.\n" +
		"5. *Generate & Share:* Your QR code appears instantly! Download it or share the image directly."}
}

func (r *Router) rate() Response {
	return Response{
		Text: "We're thrilled you love QRCrafter! Your feedback helps us improve.\n\n" +
			"Please tap the button below to leave a quick rating and review:",
		Keyboard: &Keyboard{
			Kind: KeyboardInline,
			Rows: [][]Button{{{Label: "⭐ Rate QRCrafter Now!", Kind: ButtonURL, Data: r.links.Rating}}},
		},
	}
}

func (r *Router) webApp() Response {
	return Response{
		Text: "Here is the direct launch button for the QRCrafter Mini App:\n" +
			"Link: `" + r.links.WebApp + "`",
		Keyboard: &Keyboard{
			Kind: KeyboardInline,
			Rows: [][]Button{{{Label: "Open QRCrafter Mini App", Kind: ButtonWebApp, Data: r.links.WebApp}}},
		},
	}
}

func (r *Router) unknownAction() Response {
	return Response{
		Text:     "Unknown action. Please use one of the commands on the reply keyboard or the main app button.",
		Format:   FormatPlain,
		Keyboard: r.MainMenu(),
		Replace:  true,
	}
}

func capabilitiesResponse() Response {
	return Response{Text: "I can help you generate QR codes for almost anything! This includes *Wi-Fi credentials*, " +
		"*contact V-Cards*, *URLs*, *plain text*, and more.\n" +
		"For the full details, tap `/features` or '🚀 Launch Mini App'!"}
}

func wifiResponse() Response {
	return Response{Text: "Yes! QRCrafter can generate QR codes that let users connect to a Wi-Fi network instantly. " +
		"Just launch the Mini App, select 'Wi-Fi' as the data type, and enter your network details."}
}

func contactResponse() Response {
	return Response{Text: "Absolutely! QRCrafter handles V-Cards. You can encode all your contact information " +
		"into a single QR code. Scanning it automatically saves your details."}
}

func greetingResponse(userName string) Response {
	return Response{Text: fmt.Sprintf("Hello, %s! Ready to craft a QR code? "+
		"Tap the '🚀 Launch QRCrafter Mini App' button to get started immediately, or type `/help` for commands.",
		markup.Escape(userName))}
}

func redirectResponse() Response {
	return Response{Text: "I'm primarily focused on helping you launch the QRCrafter Mini App and providing information about its features.\n\n" +
		"To start generating QR codes, please click the *'🚀 Launch QRCrafter Mini App'* button or use the `/help` command."}
}

// Entry is one named response of the catalog.
type Entry struct {
	Name     string
	Response Response
}

// Catalog lists every distinct response the router can produce, with
// placeholder user data where a response is templated.
func (r *Router) Catalog() []Entry {
	var out []Entry
	for _, c := range Commands() {
		out = append(out, Entry{
			Name:     "/" + string(c.Name),
			Response: r.Route(Command{Name: c.Name, UserName: "user_name", UserID: 1}),
		})
	}
	out = append(out, Entry{Name: "button:unknown", Response: r.unknownAction()})
	for _, in := range intents {
		out = append(out, Entry{Name: "text:" + in.name, Response: in.reply(r, "user_name")})
	}
	out = append(out, Entry{Name: "text:fallback", Response: redirectResponse()})
	return out
}
