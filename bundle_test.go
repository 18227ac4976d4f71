// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"sync"
	"testing"

	"github.com/pion/negotiation/pkg/rtcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validityRecorder collects every recorded validity value per event.
type validityRecorder struct {
	mu     sync.Mutex
	events map[Event][]bool
}

func newValidityRecorder() *validityRecorder {
	return &validityRecorder{events: map[Event][]bool{}}
}

func (r *validityRecorder) RecordValidity(event Event, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event] = append(r.events[event], valid)
}

func (r *validityRecorder) recorded(event Event) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]bool(nil), r.events[event]...)
}

func newRecordedSession(t *testing.T) (*Session, *validityRecorder) {
	t.Helper()

	recorder := newValidityRecorder()
	session := NewSession(Configuration{EventRecorder: recorder})
	t.Cleanup(func() { assert.NoError(t, session.Close()) })

	return session, recorder
}

func remoteVideoSection(mid string, pt uint8, codec Codec) MediaSection {
	return MediaSection{
		Mid:          mid,
		Kind:         MediaKindVideo,
		Direction:    DirectionSendonly,
		PayloadTypes: map[uint8]Codec{pt: codec},
	}
}

func TestBundle_PayloadTypeCollisionTolerated(t *testing.T) {
	session, recorder := newRecordedSession(t)

	offer := &SessionDescription{
		Type: SDPTypeOffer,
		Sections: []MediaSection{
			remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
			remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000}),
		},
		Bundles: []BundleGroup{{Mids: []string{"0", "1"}}},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Equal(t, SignalingStateHaveRemoteOffer, session.SignalingState())
	assert.Equal(t, []bool{false}, recorder.recorded(EventBundlePayloadTypeValidity))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundleExtensionIDValidity))
}

func TestBundle_PayloadTypesConsistent(t *testing.T) {
	session, recorder := newRecordedSession(t)

	offer := &SessionDescription{
		Type: SDPTypeOffer,
		Sections: []MediaSection{
			remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
			remoteVideoSection("1", 96, Codec{Name: "vp8", ClockRate: 90000}),
		},
		Bundles: []BundleGroup{{Mids: []string{"0", "1"}}},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundlePayloadTypeValidity))
}

func TestBundle_PayloadTypeCollisionAcrossGroupsExempt(t *testing.T) {
	session, recorder := newRecordedSession(t)

	offer := &SessionDescription{
		Type: SDPTypeOffer,
		Sections: []MediaSection{
			remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
			remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000}),
		},
		Bundles: []BundleGroup{{Mids: []string{"0"}}, {Mids: []string{"1"}}},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundlePayloadTypeValidity))
}

func TestBundle_PayloadTypeParameterAware(t *testing.T) {
	baseline := map[string]string{"packetization-mode": "1", "profile-level-id": "42e01f"}
	divergent := map[string]string{"packetization-mode": "1", "profile-level-id": "640032"}

	for _, testCase := range []struct {
		name  string
		other map[string]string
		valid bool
	}{
		{"matching h264 profiles", baseline, true},
		{"diverging h264 profiles", divergent, false},
	} {
		session, recorder := newRecordedSession(t)

		offer := &SessionDescription{
			Type: SDPTypeOffer,
			Sections: []MediaSection{
				remoteVideoSection("0", 96, Codec{Name: "H264", ClockRate: 90000, Parameters: baseline}),
				remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000, Parameters: testCase.other}),
			},
			Bundles: []BundleGroup{{Mids: []string{"0", "1"}}},
		}

		assert.NoError(t, session.SetRemoteDescription(offer), "testCase: %s", testCase.name)
		assert.Equal(t, []bool{testCase.valid},
			recorder.recorded(EventBundlePayloadTypeValidity), "testCase: %s", testCase.name)
	}
}

func TestBundle_ExtensionIDCollisionFatal(t *testing.T) {
	session, recorder := newRecordedSession(t)

	first := remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000})
	first.HeaderExtensions = []HeaderExtension{{ID: 5, URI: "urn:ietf:params:rtp-hdrext:sdes:mid"}}
	second := remoteVideoSection("1", 97, Codec{Name: "VP8", ClockRate: 90000})
	second.HeaderExtensions = []HeaderExtension{{ID: 5, URI: "urn:ietf:params:rtp-hdrext:toffset"}}

	offer := &SessionDescription{
		Type:     SDPTypeOffer,
		Sections: []MediaSection{first, second},
		Bundles:  []BundleGroup{{Mids: []string{"0", "1"}}},
	}

	err := session.SetRemoteDescription(offer)
	assert.ErrorIs(t, err, ErrBundleExtensionIDCollision)

	var invalidParameter *rtcerr.InvalidParameterError
	assert.ErrorAs(t, err, &invalidParameter)

	// A rejected description leaves the session untouched.
	assert.Equal(t, SignalingStateStable, session.SignalingState())
	assert.Nil(t, session.RemoteDescription())
	assert.Empty(t, session.GetTransceivers())

	assert.Equal(t, []bool{false}, recorder.recorded(EventBundleExtensionIDValidity))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundlePayloadTypeValidity))
}

func TestBundle_SameURIDifferentIDsTolerated(t *testing.T) {
	session, recorder := newRecordedSession(t)

	first := remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000})
	first.HeaderExtensions = []HeaderExtension{{ID: 5, URI: "urn:ietf:params:rtp-hdrext:sdes:mid"}}
	second := remoteVideoSection("1", 97, Codec{Name: "VP8", ClockRate: 90000})
	second.HeaderExtensions = []HeaderExtension{{ID: 6, URI: "urn:ietf:params:rtp-hdrext:sdes:mid"}}

	offer := &SessionDescription{
		Type:     SDPTypeOffer,
		Sections: []MediaSection{first, second},
		Bundles:  []BundleGroup{{Mids: []string{"0", "1"}}},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundleExtensionIDValidity))
}

// Multiple findings within one description still record exactly one
// value per event.
func TestBundle_OneEventPerValidationPass(t *testing.T) {
	session, recorder := newRecordedSession(t)

	sections := []MediaSection{
		remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
		remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000}),
		remoteVideoSection("2", 96, Codec{Name: "AV1", ClockRate: 90000}),
		remoteVideoSection("3", 96, Codec{Name: "VP9", ClockRate: 90000}),
	}
	offer := &SessionDescription{
		Type:     SDPTypeOffer,
		Sections: sections,
		Bundles:  []BundleGroup{{Mids: []string{"0", "1", "2", "3"}}},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Len(t, recorder.recorded(EventBundlePayloadTypeValidity), 1)
	assert.Len(t, recorder.recorded(EventBundleExtensionIDValidity), 1)
}

func TestBundle_UnbundledDescriptionNotChecked(t *testing.T) {
	session, recorder := newRecordedSession(t)

	offer := &SessionDescription{
		Type: SDPTypeOffer,
		Sections: []MediaSection{
			remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
			remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000}),
		},
	}

	assert.NoError(t, session.SetRemoteDescription(offer))
	assert.Empty(t, recorder.recorded(EventBundlePayloadTypeValidity))
	assert.Empty(t, recorder.recorded(EventBundleExtensionIDValidity))
}

func TestBundle_RejectedSectionsSkipped(t *testing.T) {
	session, recorder := newRecordedSession(t)

	rejected := remoteVideoSection("1", 96, Codec{Name: "H264", ClockRate: 90000})
	rejected.Rejected = true

	offer := &SessionDescription{
		Type: SDPTypeOffer,
		Sections: []MediaSection{
			remoteVideoSection("0", 96, Codec{Name: "VP8", ClockRate: 90000}),
			rejected,
		},
		Bundles: []BundleGroup{{Mids: []string{"0", "1"}}},
	}

	require.NoError(t, session.SetRemoteDescription(offer))
	assert.Equal(t, []bool{true}, recorder.recorded(EventBundlePayloadTypeValidity))
}
