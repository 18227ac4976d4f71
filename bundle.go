// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"strings"

	"github.com/pion/negotiation/internal/codecparams"
	"github.com/pion/negotiation/pkg/rtcerr"
)

// checkResult is the outcome of one bundle validation pass. valid feeds
// the telemetry counter; err is set only when the finding is fatal to
// the negotiation attempt. Payload-type collisions are valid=false with
// a nil err: recorded, tolerated.
type checkResult struct {
	valid bool
	err   error
}

// checkBundledPayloadTypes verifies that every payload type shared by
// two sections of one bundle group identifies the same codec
// configuration. Collisions across different bundle groups cannot occur
// on the wire and are exempt. Rejected sections carry no media and are
// skipped.
func checkBundledPayloadTypes(desc *SessionDescription) checkResult {
	result := checkResult{valid: true}

	for _, bundle := range desc.Bundles {
		seen := map[uint8]Codec{}
		for _, mid := range bundle.Mids {
			section := desc.section(mid)
			if section == nil || section.Rejected {
				continue
			}

			for pt, codec := range section.PayloadTypes {
				prior, ok := seen[pt]
				if !ok {
					seen[pt] = codec

					continue
				}
				if !codecsMatch(prior, codec) {
					result.valid = false
				}
			}
		}
	}

	return result
}

// codecsMatch reports whether two codec descriptions bound to the same
// payload type are interchangeable once demultiplexed onto one
// transport.
func codecsMatch(a, b Codec) bool {
	if !strings.EqualFold(a.Name, b.Name) {
		return false
	}
	if a.ClockRate != b.ClockRate {
		return false
	}
	if a.Channels != b.Channels {
		return false
	}

	return codecparams.Match(a.Name, a.Parameters, b.Parameters)
}

// checkBundledExtensionIDs verifies that within one bundle group no
// header-extension id is bound to two different uris. Extension ids are
// interpreted per packet without per-section context once bundled, so
// this ambiguity is unrecoverable and fatal. The inverse, one uri bound
// to different ids across sections, self-describes correctly and is
// tolerated.
func checkBundledExtensionIDs(desc *SessionDescription) checkResult {
	result := checkResult{valid: true}

	for _, bundle := range desc.Bundles {
		uriByID := map[int]string{}
		for _, mid := range bundle.Mids {
			section := desc.section(mid)
			if section == nil || section.Rejected {
				continue
			}

			for _, ext := range section.HeaderExtensions {
				prior, ok := uriByID[ext.ID]
				if !ok {
					uriByID[ext.ID] = ext.URI

					continue
				}
				if prior != ext.URI {
					result.valid = false
					result.err = &rtcerr.InvalidParameterError{Err: ErrBundleExtensionIDCollision}
				}
			}
		}
	}

	return result
}
