package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/eliseohh/qrcrafterbot/internal/markup"
	"github.com/eliseohh/qrcrafterbot/internal/router"
)

func main() {
	fmt.Println("🛡️  Checking response catalog...")

	r := router.New(router.Links{
		WebApp: os.Getenv("QRCRAFTER_WEB_APP_URL"),
		Rating: os.Getenv("QRCRAFTER_RATING_URL"),
	})

	errors := 0
	for _, e := range r.Catalog() {
		for _, v := range check(r, e.Response) {
			fmt.Printf("❌ [%s] %s\n", e.Name, v)
			errors++
		}
	}

	if errors > 0 {
		fmt.Printf("\n🚫 %d violations found.\n", errors)
		os.Exit(1)
	}

	fmt.Println("✅ Catalog verified")
}

// check returns one line per problem in resp and its follow-ups.
func check(r *router.Router, resp router.Response) []string {
	var out []string
	for cur := &resp; cur != nil; cur = cur.Then {
		if cur.Format == router.FormatMarkdown {
			if err := markup.Validate(cur.Text); err != nil {
				out = append(out, err.Error())
			}
		} else if cur.Text == "" {
			out = append(out, "empty text")
		}

		for _, btn := range cur.Keyboard.Buttons() {
			switch btn.Kind {
			case router.ButtonURL, router.ButtonWebApp:
				u, err := url.Parse(btn.Data)
				if err != nil || u.Scheme != "https" || u.Host == "" {
					out = append(out, fmt.Sprintf("button %q: not an https url: %q", btn.Label, btn.Data))
				}
			case router.ButtonCallback:
				if err := markup.ValidateCallbackData(btn.Data); err != nil {
					out = append(out, fmt.Sprintf("button %q: %v", btn.Label, err))
				}
				if isFallback(r, btn.Data) {
					out = append(out, fmt.Sprintf("button %q: token %q is not routed", btn.Label, btn.Data))
				}
			}
		}
	}
	return out
}

func isFallback(r *router.Router, token string) bool {
	return r.Route(router.ButtonPress{Token: token}).Replace
}
