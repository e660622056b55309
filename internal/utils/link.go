package utils

import (
	"fmt"
	"net/url"
)

// JoinURL builds the web app link that drops a player into roomID.
// An empty base yields an empty link.
func JoinURL(base, roomID, name string) (string, error) {
	if base == "" {
		return "", nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse webapp url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("webapp url %q must be absolute", base)
	}
	q := u.Query()
	q.Set("room_id", roomID)
	if name != "" {
		q.Set("name", name)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
