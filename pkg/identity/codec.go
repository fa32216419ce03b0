package identity

import (
	"strings"

	"github.com/davidc-dev/device-workflow/pkg/types"
)

// Prefix is the canonical application name prefix for device applications.
const Prefix = "device-"

// Encode derives the canonical application name for a device:
// "device-" + slug(name) + "-" + id. Encoding is strict: the device id must
// be a non-empty token and the name must survive slugging.
func Encode(identity types.DeviceIdentity) (string, error) {
	if strings.TrimSpace(identity.ID) == "" {
		return "", types.NewValidationError("device_id", "must be a non-empty token")
	}
	slug := Slug(identity.Name)
	if slug == "" {
		return "", types.NewValidationError("device_name", "empty after normalization")
	}
	return Prefix + slug + "-" + strings.TrimSpace(identity.ID), nil
}

// Decode recovers a device identity from a canonical application name.
// Decoding is lenient: inventory entries not produced by Encode must still
// yield a usable record. When the name lacks the device- prefix or contains
// no separator, the whole trimmed string becomes the device name and the id
// is left empty.
//
// The id is taken from the token after the last hyphen. Device names that
// themselves end in a hyphenated token are therefore indistinguishable from
// an id at decode time and misparse; this matches the name derivation the
// rest of the system relies on and is pinned by tests.
func Decode(appName string) types.DeviceIdentity {
	trimmed := strings.TrimSpace(appName)
	if !strings.HasPrefix(trimmed, Prefix) {
		return types.DeviceIdentity{Name: trimmed}
	}

	rest := strings.TrimPrefix(trimmed, Prefix)
	idx := strings.LastIndex(rest, "-")
	if idx < 0 {
		return types.DeviceIdentity{Name: trimmed}
	}

	return types.DeviceIdentity{
		Name: strings.ReplaceAll(rest[:idx], "-", " "),
		ID:   rest[idx+1:],
	}
}

// Slug lowercases a device name and replaces whitespace, underscores and any
// other path-hostile characters with hyphens. Runs of replaced characters
// collapse into a single hyphen and leading/trailing hyphens are dropped.
func Slug(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastHyphen := false
	for _, r := range lowered {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch {
		case valid:
			b.WriteRune(r)
			lastHyphen = false
		case lastHyphen:
			// collapse
		default:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
