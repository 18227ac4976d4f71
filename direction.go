// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import "strings"

// Direction indicates the direction of a media section or header
// extension.
type Direction int

const (
	// DirectionSendrecv indicates the section will send and receive.
	DirectionSendrecv Direction = iota + 1

	// DirectionSendonly indicates the section will only send.
	DirectionSendonly

	// DirectionRecvonly indicates the section will only receive.
	DirectionRecvonly

	// DirectionInactive indicates the section will neither send nor
	// receive.
	DirectionInactive
)

const (
	directionSendrecvStr = "sendrecv"
	directionSendonlyStr = "sendonly"
	directionRecvonlyStr = "recvonly"
	directionInactiveStr = "inactive"
)

// NewDirection creates a Direction from a string.
func NewDirection(raw string) Direction {
	switch strings.ToLower(raw) {
	case directionSendrecvStr:
		return DirectionSendrecv
	case directionSendonlyStr:
		return DirectionSendonly
	case directionRecvonlyStr:
		return DirectionRecvonly
	case directionInactiveStr:
		return DirectionInactive
	default:
		return Direction(Unknown)
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionSendrecv:
		return directionSendrecvStr
	case DirectionSendonly:
		return directionSendonlyStr
	case DirectionRecvonly:
		return directionRecvonlyStr
	case DirectionInactive:
		return directionInactiveStr
	default:
		return unknownStr
	}
}

// Reverse returns the direction the far side observes.
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionSendonly:
		return DirectionRecvonly
	case DirectionRecvonly:
		return DirectionSendonly
	default:
		return d
	}
}
