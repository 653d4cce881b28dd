//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification service is known.
func Notify(_, _ string, _ Options) error { return nil }
