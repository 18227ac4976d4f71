// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package codecparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func params(pairs ...string) map[string]string {
	m := map[string]string{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}

	return m
}

func TestMatchH264(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     map[string]string
		expected bool
	}{
		{
			"Equal",
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			true,
		},
		{
			"PacketizationModeDiffers",
			params("packetization-mode", "0", "profile-level-id", "42e01f"),
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			false,
		},
		{
			"ProfileLevelIDDiffers",
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			params("packetization-mode", "1", "profile-level-id", "640032"),
			false,
		},
		{
			"MissingPacketizationModeDefaultsToZero",
			params("profile-level-id", "42e01f"),
			params("packetization-mode", "0", "profile-level-id", "42e01f"),
			true,
		},
		{
			"IrrelevantKeyIgnored",
			params("packetization-mode", "1", "profile-level-id", "42e01f", "level-asymmetry-allowed", "1"),
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			true,
		},
		{
			"CaseInsensitiveValues",
			params("packetization-mode", "1", "profile-level-id", "42E01F"),
			params("packetization-mode", "1", "profile-level-id", "42e01f"),
			true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Match("H264", testCase.a, testCase.b))
		})
	}
}

func TestMatchVP9(t *testing.T) {
	assert.True(t, Match("VP9", params(), params("profile-id", "0")))
	assert.False(t, Match("VP9", params("profile-id", "2"), params("profile-id", "0")))
}

func TestMatchAV1(t *testing.T) {
	assert.True(t, Match("AV1", params(), params("profile", "0")))
	assert.False(t, Match("AV1", params("profile", "1"), params()))
}

func TestMatchGeneric(t *testing.T) {
	assert.True(t, Match("opus", params("minptime", "10"), params("useinbandfec", "1")))
	assert.False(t, Match("opus", params("stereo", "1"), params("stereo", "0")))
}
