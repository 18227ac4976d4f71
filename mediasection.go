// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// SSRC represents a synchronization source identifier.
type SSRC uint32

// Codec describes one payload type binding of a media section. Only the
// attributes relevant to negotiation are carried; encoding and decoding
// are out of scope.
type Codec struct {
	Name       string
	ClockRate  uint32
	Channels   uint16
	Parameters map[string]string
}

// HeaderExtension describes one negotiated RTP header extension.
type HeaderExtension struct {
	ID        int
	URI       string
	Direction Direction
}

// SSRCGroup groups synchronization sources under a semantic, e.g. FID
// for retransmission pairing or FEC-FR for forward error correction.
type SSRCGroup struct {
	Semantics string
	SSRCs     []SSRC
}

// MediaStream binds a set of ssrcs to a cname.
type MediaStream struct {
	CName string
	SSRCs []SSRC
}

// Rid describes one restriction identifier used to demultiplex
// simulcast layers.
type Rid struct {
	ID        string
	Direction Direction
}

// MediaSection is one m-section of a SessionDescription.
type MediaSection struct {
	Mid              string
	Kind             MediaKind
	Direction        Direction
	Rejected         bool
	PayloadTypes     map[uint8]Codec
	HeaderExtensions []HeaderExtension
	SSRCGroups       []SSRCGroup
	Streams          []MediaStream
	Rids             []Rid
	Simulcast        bool
}

// hasHeaderExtension reports whether the section negotiated the given
// extension uri, regardless of the id it is bound to.
func (m *MediaSection) hasHeaderExtension(uri string) bool {
	for _, ext := range m.HeaderExtensions {
		if ext.URI == uri {
			return true
		}
	}

	return false
}

// hasStreamSSRC reports whether the given ssrc has a stream (cname)
// binding within the section.
func (m *MediaSection) hasStreamSSRC(ssrc SSRC) bool {
	for _, stream := range m.Streams {
		for _, s := range stream.SSRCs {
			if s == ssrc {
				return true
			}
		}
	}

	return false
}

// BundleGroup is a set of mids sharing one transport.
type BundleGroup struct {
	Mids []string
}
