// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

import "strings"

// Segment Skipping - these keys decide whether sessions start and which categories they act on.
const (
	SponsorBlockEnable      = "sponsorblock.enable"
	SponsorBlockManualSkips = "sponsorblock.manual_skips"

	// sponsorBlockCategoryPrefix is joined with a category name, e.g. sponsorblock.enable_sponsor.
	sponsorBlockCategoryPrefix = "sponsorblock.enable_"
)

// SponsorBlockCategory returns the key toggling auto-skip for the given category.
func SponsorBlockCategory(category string) string {
	return sponsorBlockCategoryPrefix + category
}

// CategoryOf returns the category named by a category toggle key.
func CategoryOf(key string) (string, bool) {
	return strings.CutPrefix(key, sponsorBlockCategoryPrefix)
}

// Segment Provider - these keys locate the local process serving segment data.
const (
	ProviderHost      = "provider.host"
	ProviderPortStart = "provider.port_start"
	ProviderPortEnd   = "provider.port_end"
	ProviderTimeoutMs = "provider.timeout_ms"
)

// Session - these keys tune how a session waits for the host video element.
const (
	SessionVideoPollMs       = "session.video_poll_ms"
	SessionVideoPollAttempts = "session.video_poll_attempts"
)

// Overlay - these keys describe the host slider the overlay attaches to.
const (
	OverlaySliderSelector = "overlay.slider_selector"
	OverlayBarSelector    = "overlay.bar_selector"
	OverlayFocusAttribute = "overlay.focus_attribute"
	OverlayPollMs         = "overlay.poll_ms"
	OverlayPollAttempts   = "overlay.poll_attempts"
)

// Media Playback - these keys configure the mpv host.
const (
	PlayerSocket = "player.socket"
	NotifyOSD    = "notify.osd"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
