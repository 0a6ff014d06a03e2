package session

import (
	"net/url"
	"strings"
)

// ParseVideoID extracts a video id from a navigation signal. It understands
// hash routes ("#/watch?v=ID&t=1"), URLs carrying a v query parameter,
// youtu.be short links and bare ids. It returns "" when there is no id.
func ParseVideoID(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}

	if i := strings.IndexByte(location, '#'); i >= 0 {
		if id := fromRoute(location[i+1:]); id != "" {
			return id
		}
		location = location[:i]
	}

	if id := fromRoute(location); id != "" {
		return id
	}

	if u, err := url.Parse(location); err == nil && u.Host != "" {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if host == "youtu.be" {
			id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
			return id
		}
		return ""
	}

	if strings.ContainsAny(location, "/?&=:# \\") {
		return ""
	}
	return location
}

// fromRoute reads the v parameter of a path with a query, e.g. "/watch?v=ID".
func fromRoute(route string) string {
	_, query, ok := strings.Cut(route, "?")
	if !ok {
		return ""
	}

	// pairs that fail to parse are dropped, the rest still count
	values, _ := url.ParseQuery(query)
	return values.Get("v")
}
