//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

func openImageStore() (imageStore, error) { return nil, errUnsupported }
