// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// SessionDescription is the structured form of a session description as
// produced by an SDP parser. The engine never consumes raw protocol
// text. Section order, once assigned, is never reordered across
// renegotiation rounds.
type SessionDescription struct {
	Type     SDPType        `json:"type"`
	Sections []MediaSection `json:"sections"`
	Bundles  []BundleGroup  `json:"bundles"`
}

// section returns the media section tagged with the given mid, or nil.
func (d *SessionDescription) section(mid string) *MediaSection {
	for i := range d.Sections {
		if d.Sections[i].Mid == mid {
			return &d.Sections[i]
		}
	}

	return nil
}
