package constant

import "time"

// Provider defaults, matching the port window local providers advertise on.
const (
	ProviderHost      = "127.0.0.1"
	ProviderPortStart = 4040
	ProviderPortEnd   = 4050
	ProviderTimeout   = 2 * time.Second
)

// NotificationTitle is the title of every toast the controller raises.
const NotificationTitle = "SponsorBlock"
