// Package useragent condenses the raw User-Agent header into the device
// identity stamped on verification audit rows.
package useragent

import (
	"fmt"

	"github.com/mileusna/useragent"
)

// DeviceAgent is the parsed identity of a calling device. Kiosks and the
// mobile app both send standard browser agents.
type DeviceAgent struct {
	Name      string
	OS        string
	OSVersion string
	Mobile    bool
	Bot       bool
}

// Parse extracts the device identity from a User-Agent header value.
func Parse(header string) *DeviceAgent {
	parsed := useragent.Parse(header)
	return &DeviceAgent{
		Name:      parsed.Name,
		OS:        parsed.OS,
		OSVersion: parsed.OSVersion,
		Mobile:    parsed.Mobile,
		Bot:       parsed.Bot,
	}
}

// DisplayName is the human-readable label stored as the audit row's device
// name, e.g. "Chrome on Windows 10.0".
func (a *DeviceAgent) DisplayName() string {
	switch {
	case a.Name == "":
		return "unknown device"
	case a.OS == "":
		return a.Name
	case a.OSVersion == "":
		return fmt.Sprintf("%s on %s", a.Name, a.OS)
	default:
		return fmt.Sprintf("%s on %s %s", a.Name, a.OS, a.OSVersion)
	}
}
