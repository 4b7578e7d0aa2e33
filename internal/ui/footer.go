package ui

// Link is a labelled anchor
type Link struct {
	Label string
	Href  string
}

// ContactItem is an icon with a line of text
type ContactItem struct {
	Icon string
	Text string
}

// Footer is the static branding block at the bottom of every page
type Footer struct {
	Brand      string
	Blurb      string
	QuickLinks []Link
	Contacts   []ContactItem
	Social     []Link
	Copyright  string
}

// DefaultFooter returns the site footer
func DefaultFooter() Footer {
	return Footer{
		Brand: "EduPlatform",
		Blurb: "Empowering students to achieve their academic goals with top-quality resources and guidance.",
		QuickLinks: []Link{
			{Label: "About Us", Href: "#"},
			{Label: "Courses", Href: "#"},
			{Label: "Success Stories", Href: "#"},
			{Label: "Terms of Service", Href: "#"},
		},
		Contacts: []ContactItem{
			{Icon: "mail", Text: "support@eduplatform.com"},
			{Icon: "phone", Text: "+91 98765 43210"},
			{Icon: "map-pin", Text: "123 Education Lane, Knowledge City"},
		},
		Social: []Link{
			{Label: "Facebook", Href: "#"},
			{Label: "Twitter", Href: "#"},
			{Label: "Instagram", Href: "#"},
		},
		Copyright: "© 2025 EduPlatform. All rights reserved.",
	}
}
