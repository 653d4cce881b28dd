//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = notifyDest + ".Notify"
)

// Notify sends a desktop notification over the org.freedesktop.Notifications D-Bus interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(notifyDest, notifyPath).Call(notifyMethod, 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, notifyHints(), int32(opts.timeout().Milliseconds()))
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}

// notifyHints keeps the notification out of the server's history.
func notifyHints() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"category":  dbus.MakeVariant("presence"),
		"transient": dbus.MakeVariant(true),
	}
}
