// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"strings"
	"testing"

	"github.com/pion/negotiation/pkg/rtcerr"
	"github.com/pion/sdp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, config Configuration) *Session {
	t.Helper()

	session := NewSession(config)
	t.Cleanup(func() { assert.NoError(t, session.Close()) })

	return session
}

func TestValidate_SSRCGroupCompleteness(t *testing.T) {
	for _, semantics := range []string{"FID", "FEC-FR"} {
		session := newTestSession(t, Configuration{})

		section := remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000})
		section.SSRCGroups = []SSRCGroup{{Semantics: semantics, SSRCs: []SSRC{1000, 1001}}}
		section.Streams = []MediaStream{{CName: "host", SSRCs: []SSRC{1000}}}

		offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{section}}

		err := session.SetRemoteDescription(offer)
		assert.ErrorIs(t, err, ErrSSRCGroupIncomplete, "semantics: %s", semantics)

		var malformed *rtcerr.MalformedDescriptionError
		assert.ErrorAs(t, err, &malformed, "semantics: %s", semantics)
		assert.Equal(t, SignalingStateStable, session.SignalingState())
	}
}

func TestValidate_SSRCGroupComplete(t *testing.T) {
	session := newTestSession(t, Configuration{})

	section := remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000})
	section.SSRCGroups = []SSRCGroup{{Semantics: "FID", SSRCs: []SSRC{1000, 1001}}}
	section.Streams = []MediaStream{{CName: "host", SSRCs: []SSRC{1000, 1001}}}

	offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{section}}
	assert.NoError(t, session.SetRemoteDescription(offer))
}

// A remote answer accepting simulcast must carry the mid and
// rtp-stream-id header extensions; an offer announcing simulcast is not
// held to that, the answer decides.
func TestValidate_SimulcastAnswerPreconditions(t *testing.T) {
	for _, testCase := range []struct {
		name       string
		extensions []HeaderExtension
		wantErr    bool
	}{
		{"both extensions", []HeaderExtension{
			{ID: 1, URI: sdp.SDESMidURI},
			{ID: 2, URI: sdp.SDESRTPStreamIDURI},
		}, false},
		{"missing rtp-stream-id", []HeaderExtension{
			{ID: 1, URI: sdp.SDESMidURI},
		}, true},
		{"missing both", nil, true},
	} {
		session := newTestSession(t, Configuration{})

		_, err := session.AddTransceiver(MediaKindVideo, TransceiverInit{
			Direction:     DirectionSendonly,
			SendEncodings: []string{"hi", "lo"},
		})
		require.NoError(t, err, "testCase: %s", testCase.name)

		offer, err := session.CreateOffer()
		require.NoError(t, err, "testCase: %s", testCase.name)
		require.NoError(t, session.SetLocalDescription(offer), "testCase: %s", testCase.name)

		answer := &SessionDescription{
			Type: SDPTypeAnswer,
			Sections: []MediaSection{{
				Mid:              offer.Sections[0].Mid,
				Kind:             MediaKindVideo,
				Direction:        DirectionRecvonly,
				PayloadTypes:     offer.Sections[0].PayloadTypes,
				HeaderExtensions: testCase.extensions,
				Rids: []Rid{
					{ID: "hi", Direction: DirectionRecvonly},
					{ID: "lo", Direction: DirectionRecvonly},
				},
				Simulcast: true,
			}},
			Bundles: offer.Bundles,
		}

		err = session.SetRemoteDescription(answer)
		if testCase.wantErr {
			assert.ErrorIs(t, err, ErrSimulcastMissingExtensions, "testCase: %s", testCase.name)

			var invalidParameter *rtcerr.InvalidParameterError
			assert.ErrorAs(t, err, &invalidParameter, "testCase: %s", testCase.name)
			assert.Equal(t, SignalingStateHaveLocalOffer, session.SignalingState(), "testCase: %s", testCase.name)

			continue
		}

		assert.NoError(t, err, "testCase: %s", testCase.name)
		assert.Equal(t, SignalingStateStable, session.SignalingState(), "testCase: %s", testCase.name)
	}
}

func TestValidate_DuplicateLocalSSRC(t *testing.T) {
	session := newTestSession(t, Configuration{})

	first := remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000})
	first.Streams = []MediaStream{{CName: "a", SSRCs: []SSRC{4242}}}
	second := remoteVideoSection("1", 96, Codec{Name: "VP8", ClockRate: 90000})
	second.Streams = []MediaStream{{CName: "b", SSRCs: []SSRC{4242}}}

	offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{first, second}}

	err := session.SetLocalDescription(offer)
	assert.ErrorIs(t, err, ErrDuplicateSSRC)

	var invalidParameter *rtcerr.InvalidParameterError
	assert.ErrorAs(t, err, &invalidParameter)
	assert.Equal(t, SignalingStateStable, session.SignalingState())
}

func TestValidate_MidLength(t *testing.T) {
	longMid := strings.Repeat("m", defaultMaxMidLength+1)
	okMid := strings.Repeat("m", defaultMaxMidLength)

	session := newTestSession(t, Configuration{})

	offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{
		remoteVideoSection(longMid, 96, Codec{Name: "VP8", ClockRate: 90000}),
	}}
	err := session.SetRemoteDescription(offer)
	assert.ErrorIs(t, err, ErrExcessiveMid)

	var invalidParameter *rtcerr.InvalidParameterError
	assert.ErrorAs(t, err, &invalidParameter)
	assert.Equal(t, SignalingStateStable, session.SignalingState())

	offer = &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{
		remoteVideoSection(okMid, 96, Codec{Name: "VP8", ClockRate: 90000}),
	}}
	assert.NoError(t, session.SetRemoteDescription(offer))
}

func TestValidate_MidLengthAppliesLocally(t *testing.T) {
	session := newTestSession(t, Configuration{})

	offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{
		remoteVideoSection(strings.Repeat("m", defaultMaxMidLength+1), 96, Codec{Name: "VP8", ClockRate: 90000}),
	}}
	assert.ErrorIs(t, session.SetLocalDescription(offer), ErrExcessiveMid)
}

func TestValidate_MidLengthConfigurable(t *testing.T) {
	session := newTestSession(t, Configuration{MaxMidLength: 3})

	offer := &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{
		remoteVideoSection("abcd", 96, Codec{Name: "VP8", ClockRate: 90000}),
	}}
	assert.ErrorIs(t, session.SetRemoteDescription(offer), ErrExcessiveMid)

	offer = &SessionDescription{Type: SDPTypeOffer, Sections: []MediaSection{
		remoteVideoSection("abc", 96, Codec{Name: "VP8", ClockRate: 90000}),
	}}
	assert.NoError(t, session.SetRemoteDescription(offer))
}
