package session

import (
	"fmt"

	"github.com/mssola/useragent"
)

// DeviceName turns a User-Agent header into a short display string such as
// "Chrome on Mac OS X". Used purely for session listings and logs; never
// for any security decision.
func DeviceName(rawUserAgent string) string {
	if rawUserAgent == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUserAgent)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return fmt.Sprintf("%s on %s", browser, os)
}
