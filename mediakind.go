// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import "strings"

// MediaKind identifies the media type of a section or transceiver.
type MediaKind int

const (
	// MediaKindAudio indicates an audio section.
	MediaKindAudio MediaKind = iota + 1

	// MediaKindVideo indicates a video section.
	MediaKindVideo

	// MediaKindApplication indicates an application (data) section.
	MediaKindApplication
)

const (
	mediaKindAudioStr       = "audio"
	mediaKindVideoStr       = "video"
	mediaKindApplicationStr = "application"
)

// NewMediaKind creates a MediaKind from a string.
func NewMediaKind(raw string) MediaKind {
	switch strings.ToLower(raw) {
	case mediaKindAudioStr:
		return MediaKindAudio
	case mediaKindVideoStr:
		return MediaKindVideo
	case mediaKindApplicationStr:
		return MediaKindApplication
	default:
		return MediaKind(Unknown)
	}
}

func (k MediaKind) String() string {
	switch k {
	case MediaKindAudio:
		return mediaKindAudioStr
	case MediaKindVideo:
		return mediaKindVideoStr
	case MediaKindApplication:
		return mediaKindApplicationStr
	default:
		return unknownStr
	}
}
