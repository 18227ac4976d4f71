// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import "strconv"

// midAllocator tracks the highest numeric mid negotiated so far, so
// fresh sections always get a bundle-unique identifier regardless of
// which side introduced the previous ones.
type midAllocator struct {
	greater int
}

func newMidAllocator() midAllocator {
	return midAllocator{greater: -1}
}

// observe records a negotiated mid. Non-numeric mids (remote peers may
// use arbitrary tokens) do not advance the counter; fresh local mids
// stay unique because they are checked against the live slot table at
// offer creation.
func (a *midAllocator) observe(mid string) {
	if n, err := strconv.Atoi(mid); err == nil && n > a.greater {
		a.greater = n
	}
}
