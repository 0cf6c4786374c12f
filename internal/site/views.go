package site

// NavView is one rendered navbar entry.
type NavView struct {
	Name string
	Link string
}

// SocialView is one rendered footer link.
type SocialView struct {
	Name string
	Link string
}

// TagView is a tag chip on a page or post. Link is already relative to the
// page it appears on.
type TagView struct {
	Name string
	Link string
}

// PostView is one entry in a blog or tag listing.
type PostView struct {
	Title       string
	Link        string
	Date        string
	Description string
}

// TagListEntry is one row of the tag index page.
type TagListEntry struct {
	Name  string
	Link  string
	Count int
}
