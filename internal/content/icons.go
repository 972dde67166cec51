package content

// IconID names an icon in a bundle. Icons are resolved through a fixed table
// when the page is rendered; bundles cannot name anything outside it.
type IconID string

const (
	IconRealEstate IconID = "real-estate"
	IconComputer   IconID = "computer"
	IconBusiness   IconID = "business"
	IconAnalytics  IconID = "analytics"
	IconTrending   IconID = "trending"
	IconPeople     IconID = "people"
	IconSearch     IconID = "search"
	IconTelegram   IconID = "telegram"
	IconMicrosoft  IconID = "microsoft"
	IconFacebook   IconID = "facebook"
	IconInstagram  IconID = "instagram"
	IconLinkedIn   IconID = "linkedin"
	IconTikTok     IconID = "tiktok"
	IconTwitter    IconID = "twitter"
	IconGitHub     IconID = "github"
	IconWhatsApp   IconID = "whatsapp"
	IconEmail      IconID = "email"
)

// Glyph is what the templates need to draw an icon.
type Glyph struct {
	Class string
	Title string
}

var glyphs = map[IconID]Glyph{
	IconRealEstate: {Class: "icon-home-city", Title: "Real estate"},
	IconComputer:   {Class: "icon-monitor", Title: "Computer"},
	IconBusiness:   {Class: "icon-briefcase", Title: "Business"},
	IconAnalytics:  {Class: "icon-chart-bar", Title: "Analytics"},
	IconTrending:   {Class: "icon-trending-up", Title: "Trending"},
	IconPeople:     {Class: "icon-users", Title: "People"},
	IconSearch:     {Class: "icon-search", Title: "Search"},
	IconTelegram:   {Class: "icon-telegram", Title: "Telegram"},
	IconMicrosoft:  {Class: "icon-microsoft", Title: "Microsoft"},
	IconFacebook:   {Class: "icon-facebook", Title: "Facebook"},
	IconInstagram:  {Class: "icon-instagram", Title: "Instagram"},
	IconLinkedIn:   {Class: "icon-linkedin", Title: "LinkedIn"},
	IconTikTok:     {Class: "icon-tiktok", Title: "TikTok"},
	IconTwitter:    {Class: "icon-twitter", Title: "X"},
	IconGitHub:     {Class: "icon-github", Title: "GitHub"},
	IconWhatsApp:   {Class: "icon-whatsapp", Title: "WhatsApp"},
	IconEmail:      {Class: "icon-mail", Title: "Email"},
}

// Glyph resolves the icon. ok is false for ids outside the table.
func (id IconID) Glyph() (g Glyph, ok bool) {
	g, ok = glyphs[id]
	return g, ok
}

func (id IconID) Valid() bool {
	_, ok := glyphs[id]
	return ok
}

// Accent is a named colour token used for skill bars and service cards.
type Accent string

const (
	AccentPrimary    Accent = "primary"
	AccentSecondary  Accent = "secondary"
	AccentTertiary   Accent = "tertiary"
	AccentQuaternary Accent = "quaternary"
)

// Valid accepts the four tokens and the empty accent, which renders as primary.
func (a Accent) Valid() bool {
	switch a {
	case "", AccentPrimary, AccentSecondary, AccentTertiary, AccentQuaternary:
		return true
	}
	return false
}

// Class is the CSS class suffix for the accent.
func (a Accent) Class() string {
	if a == "" {
		return "accent-" + string(AccentPrimary)
	}
	return "accent-" + string(a)
}
