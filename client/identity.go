package client

import (
	"fmt"
	"net/http"
)

// Client identity defaults. These mirror the headers the vendor's desktop
// application sends; the API rejects clients it does not recognize, so stale
// values here surface as 4xx responses on every call.
const (
	DefaultAppVersion      = "6.164.0"
	DefaultClientType      = "electron"
	DefaultClientPlatform  = "darwin"
	DefaultClientArch      = "arm64"
	DefaultElectronVersion = "33.4.5"
	DefaultChromeVersion   = "130.0.6723.191"
	DefaultNodeVersion     = "20.18.3"
	DefaultOSVersion       = "15.3.1"
	DefaultOSBuild         = "24D70"

	// clientIDPrefix prefixes the synthesized X-Client-Id value.
	clientIDPrefix = "scribe"
)

// Identity holds the client-identity header values. Each field has a fixed
// documented default; override only when impersonating a different desktop
// build.
type Identity struct {
	AppVersion      string
	ClientType      string
	Platform        string
	Architecture    string
	ElectronVersion string
	ChromeVersion   string
	NodeVersion     string
	OSVersion       string
	OSBuild         string
}

// DefaultIdentity returns the identity of the currently-impersonated desktop
// build.
func DefaultIdentity() Identity {
	return Identity{
		AppVersion:      DefaultAppVersion,
		ClientType:      DefaultClientType,
		Platform:        DefaultClientPlatform,
		Architecture:    DefaultClientArch,
		ElectronVersion: DefaultElectronVersion,
		ChromeVersion:   DefaultChromeVersion,
		NodeVersion:     DefaultNodeVersion,
		OSVersion:       DefaultOSVersion,
		OSBuild:         DefaultOSBuild,
	}
}

// ClientID synthesizes the X-Client-Id value: "<prefix>-<clientType>-<appVersion>".
func (id Identity) ClientID() string {
	return fmt.Sprintf("%s-%s-%s", clientIDPrefix, id.ClientType, id.AppVersion)
}

// UserAgent synthesizes the desktop application's User-Agent string from the
// version fields. The format is fixed; the API fingerprints it.
func (id Identity) UserAgent() string {
	return fmt.Sprintf("Scribe/%s Electron/%s Chrome/%s Node/%s (%s %s; %s; %s)",
		id.AppVersion,
		id.ElectronVersion,
		id.ChromeVersion,
		id.NodeVersion,
		id.Platform,
		id.OSVersion,
		id.OSBuild,
		id.Architecture,
	)
}

// apply sets the identity headers on a request.
func (id Identity) apply(h http.Header) {
	h.Set("X-App-Version", id.AppVersion)
	h.Set("X-Client-Type", id.ClientType)
	h.Set("X-Client-Platform", id.Platform)
	h.Set("X-Client-Architecture", id.Architecture)
	h.Set("X-Client-Id", id.ClientID())
	h.Set("User-Agent", id.UserAgent())
}
