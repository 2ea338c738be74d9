package tracker

import "runtime"

// SDK version reported in the connection handshake.
const (
	SDKMajor = 1
	SDKMinor = 2
)

// platformID returns the platform code the bridge expects in
// ConnectionCommand.Platform.
func platformID() int {
	switch runtime.GOOS {
	case "darwin":
		return 1
	case "windows":
		return 2
	case "android":
		return 11
	case "linux":
		return 13
	case "js":
		return 17
	}
	return 0
}
