// Package listings serves the code listings shown on the documentation pages. They are
// display assets only and are never executed.
package listings

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Languages used as code fence tags when rendering.
const (
	LanguageTypeScript = "typescript"
	LanguageSQL        = "sql"
	LanguageJSON       = "json"
)

const (
	StyleAuto                = "auto"
	StyleNoTTY               = "notty"
	defaultWordWrap          = 100
	unknownListingFormat     = "%w: %q"
	readListingErrorFormat   = "read listing %s: %w"
	newRendererErrorFormat   = "create renderer: %w"
	renderListingErrorFormat = "render listing %s: %w"
)

// ErrUnknownListing is returned by Find for names outside the catalog.
var ErrUnknownListing = errors.New("unknown listing")

//go:embed assets
var assets embed.FS

type Listing struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
}

type catalogEntry struct {
	listing  Listing
	fileName string
}

var catalog = []catalogEntry{
	{
		listing: Listing{
			Name:        "ai-assistant",
			Title:       "Edge Function Implementation",
			Language:    LanguageTypeScript,
			Description: "Sample Supabase Edge Function that forwards prompts to OpenAI. Deploy with: supabase functions deploy ai-assistant",
		},
		fileName: "ai-assistant.ts",
	},
	{
		listing: Listing{
			Name:        "create-checkout-session",
			Title:       "Supabase Edge Function: create-checkout-session",
			Language:    LanguageTypeScript,
			Description: "This edge function creates a Stripe checkout session for subscriptions",
		},
		fileName: "create-checkout-session.ts",
	},
	{
		listing: Listing{
			Name:        "verify-subscription",
			Title:       "Supabase Edge Function: verify-subscription",
			Language:    LanguageTypeScript,
			Description: "This edge function verifies a Stripe subscription status",
		},
		fileName: "verify-subscription.ts",
	},
	{
		listing: Listing{
			Name:        "extension",
			Title:       "Extension Code: Main",
			Language:    LanguageTypeScript,
			Description: "VS Code extension code that uses a Supabase Edge Function",
		},
		fileName: "extension.ts",
	},
	{
		listing: Listing{
			Name:        "extension-commands",
			Title:       "Extension Code: Commands",
			Language:    LanguageTypeScript,
			Description: "Command, chat panel and inline completion handlers of the VS Code extension",
		},
		fileName: "extension-commands.ts",
	},
	{
		listing: Listing{
			Name:        "extension-package",
			Title:       "Extension Code: package.json",
			Language:    LanguageJSON,
			Description: "Extension manifest declaring commands, keybindings and configuration settings",
		},
		fileName: "package.json",
	},
	{
		listing: Listing{
			Name:        "database-schema",
			Title:       "Supabase Database Schema",
			Language:    LanguageSQL,
			Description: "SQL schema for user subscriptions and request tracking",
		},
		fileName: "database-schema.sql",
	},
}

// All returns catalog metadata without code, in catalog order.
func All() []Listing {
	listings := make([]Listing, 0, len(catalog))
	for _, entry := range catalog {
		listings = append(listings, entry.listing)
	}
	return listings
}

// Find returns the named listing including its code.
func Find(name string) (Listing, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range catalog {
		if entry.listing.Name != normalized {
			continue
		}
		code, readErr := assets.ReadFile(path.Join("assets", entry.fileName))
		if readErr != nil {
			return Listing{}, fmt.Errorf(readListingErrorFormat, entry.listing.Name, readErr)
		}
		listing := entry.listing
		listing.Code = strings.TrimRight(string(code), "\n")
		return listing, nil
	}
	return Listing{}, fmt.Errorf(unknownListingFormat, ErrUnknownListing, name)
}

// Render draws the listing as a titled, language-tagged code block for the terminal.
func Render(listing Listing, style string, width int) (string, error) {
	if width <= 0 {
		width = defaultWordWrap
	}
	styleOption := glamour.WithStandardStyle(StyleNoTTY)
	switch strings.TrimSpace(style) {
	case StyleAuto:
		styleOption = glamour.WithAutoStyle()
	case "", StyleNoTTY:
	default:
		styleOption = glamour.WithStandardStyle(style)
	}

	renderer, rendererErr := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(width))
	if rendererErr != nil {
		return "", fmt.Errorf(newRendererErrorFormat, rendererErr)
	}
	rendered, renderErr := renderer.Render(markdownDocument(listing))
	if renderErr != nil {
		return "", fmt.Errorf(renderListingErrorFormat, listing.Name, renderErr)
	}
	return rendered, nil
}

func markdownDocument(listing Listing) string {
	var builder strings.Builder
	builder.WriteString("## " + listing.Title + "\n\n")
	if listing.Description != "" {
		builder.WriteString(listing.Description + "\n\n")
	}
	builder.WriteString("`" + listing.Language + "`\n\n")
	builder.WriteString("```" + listing.Language + "\n")
	builder.WriteString(listing.Code)
	builder.WriteString("\n```\n")
	return builder.String()
}
