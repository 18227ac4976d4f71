// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"fmt"

	"github.com/pion/negotiation/pkg/rtcerr"
	"github.com/pion/sdp/v3"
)

// checkSSRCGroups verifies that every ssrc referenced by an ssrc-group
// has a stream (cname) binding in the same section. A group member
// without a stream cannot be demultiplexed, so the whole description is
// rejected; partial application is not permitted.
func checkSSRCGroups(desc *SessionDescription) error {
	for i := range desc.Sections {
		section := &desc.Sections[i]
		for _, group := range section.SSRCGroups {
			for _, ssrc := range group.SSRCs {
				if !section.hasStreamSSRC(ssrc) {
					return &rtcerr.MalformedDescriptionError{
						Err: fmt.Errorf("%w: %s group references %d", ErrSSRCGroupIncomplete, group.Semantics, ssrc),
					}
				}
			}
		}
	}

	return nil
}

// checkSimulcastPreconditions verifies that a remote answer describing
// simulcast also negotiated the mid and rtp-stream-id header extensions
// for that section. Without them the receiver cannot attribute incoming
// packets to a layer.
func checkSimulcastPreconditions(desc *SessionDescription) error {
	for i := range desc.Sections {
		section := &desc.Sections[i]
		if section.Rejected || !section.Simulcast || len(section.Rids) == 0 {
			continue
		}

		if !section.hasHeaderExtension(sdp.SDESMidURI) || !section.hasHeaderExtension(sdp.SDESRTPStreamIDURI) {
			return &rtcerr.InvalidParameterError{Err: ErrSimulcastMissingExtensions}
		}
	}

	return nil
}

// checkLocalDuplicateSSRCs verifies that no ssrc value is reused across
// two different streams of a candidate local description.
func checkLocalDuplicateSSRCs(desc *SessionDescription) error {
	type origin struct {
		section int
		stream  int
	}
	seen := map[SSRC]origin{}

	for i := range desc.Sections {
		for j, stream := range desc.Sections[i].Streams {
			for _, ssrc := range stream.SSRCs {
				if prior, ok := seen[ssrc]; ok && (prior.section != i || prior.stream != j) {
					return &rtcerr.InvalidParameterError{
						Err: fmt.Errorf("%w: %d", ErrDuplicateSSRC, ssrc),
					}
				}
				seen[ssrc] = origin{section: i, stream: j}
			}
		}
	}

	return nil
}

// checkMidLengths rejects any description carrying a mid longer than
// the configured maximum, before any section is applied.
func checkMidLengths(desc *SessionDescription, maxLength int) error {
	for i := range desc.Sections {
		if len(desc.Sections[i].Mid) > maxLength {
			return &rtcerr.InvalidParameterError{
				Err: fmt.Errorf("%w: %q", ErrExcessiveMid, desc.Sections[i].Mid),
			}
		}
	}

	return nil
}
