package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms. Only http and https URLs are opened.
func OpenBrowser(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: not a web address: %q", ErrInvalidArgument, raw)
	}

	var name string
	var args []string
	rt := getRuntime()
	switch rt {
	case "darwin":
		name, args = "open", []string{raw}
	case "linux", "freebsd", "openbsd":
		name, args = "xdg-open", []string{raw}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", raw}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := startCommand(name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
