package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// AnyOrigin allows cross-origin requests from every site.
const AnyOrigin = "*"

// normalizeOrigins lowercases, strips paths and removes duplicates.
func normalizeOrigins(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		origin := normalizeOrigin(raw)
		if origin == "" {
			continue
		}
		seen[origin] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for origin := range seen {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}

func normalizeOrigin(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == AnyOrigin {
		return value
	}
	if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func validateOrigins(origins []string) error {
	for _, o := range origins {
		if o == AnyOrigin && len(origins) > 1 {
			return fmt.Errorf("server.allowed_origins: %q cannot be combined with other origins", AnyOrigin)
		}
		if o != AnyOrigin && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("server.allowed_origins: %q must be http or https", o)
		}
	}
	return nil
}
