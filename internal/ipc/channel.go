package ipc

import (
	"path/filepath"
	"strings"
)

const (
	appChannelPrefix    = "lms.ui-test-app-"
	driverChannelPrefix = "lms.ui-test-driver-"
)

// AppChannel is the channel name of the app-side server for a test run.
func AppChannel(id string) string {
	return appChannelPrefix + id
}

// DriverChannel is the channel name of the driver-side server for a test
// run.
func DriverChannel(id string) string {
	return driverChannelPrefix + id
}

// SocketPath returns the unix socket for channel name inside dir. Characters
// other than letters, digits, '.', '-' and '_' are replaced by '_'.
func SocketPath(dir, name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return filepath.Join(dir, sanitized+".sock")
}
