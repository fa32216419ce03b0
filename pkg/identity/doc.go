/*
Package identity derives and parses the canonical application name for a
device.

The canonical name is "device-" + slug(name) + "-" + id. Encode is strict:
it rejects an empty device id or a name that slugs to nothing. Decode is
lenient by design: the controller inventory may contain applications this
system never created, so Decode never fails and instead returns a best-effort
partial identity.

Encode and Decode are separate pure functions with no shared state. The
decode heuristic splits at the last hyphen, which misparses device names that
end in a hyphenated token; see Decode for the documented ambiguity.
*/
package identity
