// Package catalog holds the fixed, statically enumerated content the client
// offers: document styles, feature tiles and example drafting prompts.
package catalog

// StyleID identifies a document style understood by the Generation Service.
type StyleID string

const (
	StyleMinimal   StyleID = "minimal"
	StyleCorporate StyleID = "corporate"
	StyleCreative  StyleID = "creative"
	StyleLuxury    StyleID = "luxury"
)

// StyleOption describes one selectable document style.
type StyleOption struct {
	ID          StyleID
	Name        string
	Description string
	Token       string // theme token used to colour the card
	Icon        string
}

var styles = []StyleOption{
	{ID: StyleMinimal, Name: "Minimal", Description: "Clean design", Token: "minimal", Icon: "📐"},
	{ID: StyleCorporate, Name: "Corporate", Description: "Professional", Token: "corporate", Icon: "🏢"},
	{ID: StyleCreative, Name: "Creative", Description: "Bold and bright", Token: "creative", Icon: "🎨"},
	{ID: StyleLuxury, Name: "Luxury", Description: "Elegant", Token: "luxury", Icon: "✨"},
}

// Styles returns the enumerated styles in display order. The slice is a copy.
func Styles() []StyleOption {
	out := make([]StyleOption, len(styles))
	copy(out, styles)
	return out
}

// DefaultStyle is the first enumerated style.
func DefaultStyle() StyleID {
	return styles[0].ID
}

// LookupStyle returns the option for id.
func LookupStyle(id StyleID) (StyleOption, bool) {
	for _, s := range styles {
		if s.ID == id {
			return s, true
		}
	}
	return StyleOption{}, false
}

// StyleIndex returns the display position of id, or -1.
func StyleIndex(id StyleID) int {
	for i, s := range styles {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// StyleAt returns the style at position i, wrapping in both directions.
func StyleAt(i int) StyleOption {
	n := len(styles)
	return styles[((i%n)+n)%n]
}

// Feature is a presentational tile shown under the form.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Features returns the feature tiles.
func Features() []Feature {
	return []Feature{
		{Icon: "⚡", Title: "Instant", Description: "Ready in seconds"},
		{Icon: "🎨", Title: "Beautiful", Description: "Professional templates"},
		{Icon: "🤖", Title: "AI assistant", Description: "Text generation"},
		{Icon: "📱", Title: "Universal", Description: "Works everywhere"},
	}
}

var examplePrompts = []string{
	"Write a sales pitch for a new personal finance app. Describe three key benefits and end with a call to download it.",
	"Write a persuasive business proposal for a potential investor. Cover the company mission, the market niche and the growth forecast.",
	"Write the text for a new product presentation. Describe the problem, the solution and why customers should choose us.",
}

// ExamplePrompts returns the fixed example drafting prompts.
func ExamplePrompts() []string {
	out := make([]string, len(examplePrompts))
	copy(out, examplePrompts)
	return out
}
