// Package notify sends desktop notifications for drawing mode changes,
// saved images and clipboard copies.
package notify

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/spotlightdraw/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventToggle fires when drawing mode is switched on or off.
	EventToggle Event = "toggle"
	// EventSave fires when an annotated image is written to disk.
	EventSave Event = "save"
	// EventCopy fires when data is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification text.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "SpotlightDraw",
		Templates: map[Event]string{
			EventToggle: "Drawing mode %s",
			EventSave:   "Saved %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// envTemplates names the variables that override each event's text.
var envTemplates = map[Event]string{
	EventToggle: "SPOTLIGHTDRAW_NOTIFY_TOGGLE_TEXT",
	EventSave:   "SPOTLIGHTDRAW_NOTIFY_SAVE_TEXT",
	EventCopy:   "SPOTLIGHTDRAW_NOTIFY_COPY_TEXT",
}

// LoadPreferences applies SPOTLIGHTDRAW_NOTIFY_TITLE and the per event
// text variables to the defaults. Each text is a fmt pattern with one %s.
func LoadPreferences() Preferences {
	p := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SPOTLIGHTDRAW_NOTIFY_TITLE")); v != "" {
		p.Title = v
	}
	for ev, name := range envTemplates {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			p.Templates[ev] = v
		}
	}
	return p
}

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a Notifier with every event switched off.
func New(prefs Preferences) *Notifier {
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: maps.Clone(prefs.Templates)},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
	}
}

// Enable switches notifications for event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n != nil {
		n.enabled[event] = enabled
	}
}

// Toggle reports the new drawing mode state.
func (n *Notifier) Toggle(on bool) {
	state := "off"
	if on {
		state = "on"
	}
	n.dispatch(EventToggle, state, platform.Options{})
}

// Save reports a written file. The file doubles as the icon when it
// exists.
func (n *Notifier) Save(path string) {
	detail, opts := strings.TrimSpace(path), platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if st, err := os.Stat(abs); err == nil && st.Mode().IsRegular() {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy. An empty detail reads as "image".
func (n *Notifier) Copy(detail string) {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// message formats the body for event, or returns "" when there is
// nothing to say.
func (n *Notifier) message(event Event, detail string) string {
	pattern := strings.TrimSpace(n.prefs.Templates[event])
	if pattern == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf(pattern, strings.TrimSpace(detail)))
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if n == nil || !n.enabled[event] {
		return
	}
	body := n.message(event, detail)
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
