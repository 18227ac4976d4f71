// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package codecparams compares the negotiation-relevant parameters of
// two codec descriptions sharing one payload type.
package codecparams

import (
	"strings"
)

// The parameter keys that decide whether two descriptions of the same
// payload type identify the same codec configuration. These are policy
// constants, pinned by tests rather than derived from the RFCs.
var (
	// H264Keys per RFC 6184, a different packetization-mode or
	// profile-level-id is a different stream.
	H264Keys = []string{"packetization-mode", "profile-level-id"}

	// VP9Keys per draft-ietf-payload-vp9.
	VP9Keys = []string{"profile-id"}

	// AV1Keys per the AV1 RTP payload spec.
	AV1Keys = []string{"profile", "level-idx", "tier"}
)

// Defaults inferred when a relevant key is absent from the fmtp line.
var defaults = map[string]string{
	"packetization-mode": "0",
	"profile-level-id":   "42000a",
	"profile-id":         "0",
	"profile":            "0",
	"level-idx":          "5",
	"tier":               "0",
}

// Match reports whether two parameter sets describe the same codec
// configuration for the named codec. Codecs without a dedicated key set
// must agree on every parameter both sides supplied.
func Match(name string, a, b map[string]string) bool {
	switch {
	case strings.EqualFold(name, "h264"):
		return keysMatch(H264Keys, a, b)
	case strings.EqualFold(name, "vp9"):
		return keysMatch(VP9Keys, a, b)
	case strings.EqualFold(name, "av1"):
		return keysMatch(AV1Keys, a, b)
	default:
		return paramsMatch(a, b)
	}
}

// keysMatch compares only the listed keys, substituting the documented
// default when one side omits a key.
func keysMatch(keys []string, a, b map[string]string) bool {
	for _, key := range keys {
		av, ok := a[key]
		if !ok {
			av = defaults[key]
		}
		bv, ok := b[key]
		if !ok {
			bv = defaults[key]
		}
		if !strings.EqualFold(av, bv) {
			return false
		}
	}

	return true
}

// paramsMatch requires agreement on the intersection of supplied keys;
// a key only one side mentions does not break the match.
func paramsMatch(a, b map[string]string) bool {
	for k, v := range a {
		if bv, ok := b[k]; ok && !strings.EqualFold(bv, v) {
			return false
		}
	}

	for k, v := range b {
		if av, ok := a[k]; ok && !strings.EqualFold(av, v) {
			return false
		}
	}

	return true
}
