package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender; it defaults to DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays up. Zero uses
	// DefaultTimeout.
	Timeout time.Duration
}

const (
	DefaultAppName = "SpotlightDraw"
	DefaultTimeout = 4 * time.Second
)

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
