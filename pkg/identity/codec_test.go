package identity

import (
	"testing"

	"github.com/davidc-dev/device-workflow/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		identity types.DeviceIdentity
		expected string
	}{
		{
			name:     "simple name",
			identity: types.DeviceIdentity{Name: "sensor", ID: "42"},
			expected: "device-sensor-42",
		},
		{
			name:     "name with spaces",
			identity: types.DeviceIdentity{Name: "Lab Sensor", ID: "42"},
			expected: "device-lab-sensor-42",
		},
		{
			name:     "name with underscores",
			identity: types.DeviceIdentity{Name: "edge_gateway", ID: "a1b2"},
			expected: "device-edge-gateway-a1b2",
		},
		{
			name:     "mixed case and punctuation",
			identity: types.DeviceIdentity{Name: "Camera (Front Door)", ID: "7"},
			expected: "device-camera-front-door-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	_, err := Encode(types.DeviceIdentity{Name: "sensor", ID: "  "})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "device_id", verr.Field)

	_, err = Encode(types.DeviceIdentity{Name: "---", ID: "42"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "device_name", verr.Field)
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		identity types.DeviceIdentity
		decoded  types.DeviceIdentity
	}{
		{
			name:     "single word name",
			identity: types.DeviceIdentity{Name: "sensor", ID: "42"},
			decoded:  types.DeviceIdentity{Name: "sensor", ID: "42"},
		},
		{
			name:     "spaces survive as spaces",
			identity: types.DeviceIdentity{Name: "lab sensor", ID: "42"},
			decoded:  types.DeviceIdentity{Name: "lab sensor", ID: "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.decoded, Decode(encoded))
		})
	}
}

// The codec splits at the last hyphen, so a device name whose slug ends in a
// hyphenated token swallows part of the name into the id. Decoding is lossy
// here; the behavior is intentional and documented on Decode.
func TestDecodeAmbiguousTrailingToken(t *testing.T) {
	encoded, err := Encode(types.DeviceIdentity{Name: "edge-01", ID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "device-edge-01-7", encoded)

	got := Decode(encoded)
	assert.Equal(t, "edge 01", got.Name)
	assert.Equal(t, "7", got.ID)

	// A name ending in a numeric token is indistinguishable from an id.
	got = Decode("device-rack-03")
	assert.Equal(t, "rack", got.Name)
	assert.Equal(t, "03", got.ID)
}

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name    string
		appName string
		want    types.DeviceIdentity
	}{
		{
			name:    "no device prefix",
			appName: "guestbook",
			want:    types.DeviceIdentity{Name: "guestbook"},
		},
		{
			name:    "no prefix with surrounding space",
			appName: "  legacy-app  ",
			want:    types.DeviceIdentity{Name: "legacy-app"},
		},
		{
			name:    "prefix but no separator in remainder",
			appName: "device-solo",
			want:    types.DeviceIdentity{Name: "device-solo"},
		},
		{
			name:    "empty string",
			appName: "",
			want:    types.DeviceIdentity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.appName))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "lab-sensor", Slug("  Lab   Sensor "))
	assert.Equal(t, "a-b-c", Slug("a_b/c"))
	assert.Equal(t, "", Slug("!!!"))
}
