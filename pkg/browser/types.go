package browser

import "time"

// Config configures the headless browser.
type Config struct {
	Headless      bool
	ExecPath      string
	UserAgent     string
	ActionTimeout time.Duration
}

// Locator finds an element either by CSS selector, by its visible text, or both.
// With both set, the CSS match must also contain the text.
type Locator struct {
	CSS  string
	Text string
}

// String describes the locator for logs.
func (l Locator) String() string {
	switch {
	case l.CSS != "" && l.Text != "":
		return l.CSS + ` with text "` + l.Text + `"`
	case l.Text != "":
		return `text "` + l.Text + `"`
	default:
		return l.CSS
	}
}

// Frame identifies a browsing context by its index path from the top document.
// An empty path is the top document.
type Frame struct {
	Path []int  `json:"path"`
	URL  string `json:"url"`
}

const defaultActionTimeout = 10 * time.Second
