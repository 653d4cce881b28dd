//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. macOS decides the
// icon and how long the banner stays up.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %s with title %s subtitle %s",
		appleQuote(body), appleQuote(title), appleQuote(opts.appName()))
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}

// appleQuote produces an AppleScript string literal.
func appleQuote(s string) string {
	return fmt.Sprintf("%q", s)
}
