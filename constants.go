// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

// Unknown is the enum value every string-backed enum in this package
// falls back to when parsing an unrecognized token.
const Unknown = iota

const unknownStr = "unknown"

// defaultMaxMidLength bounds the mid attribute of a remote description.
// RFC 5888 allows longer tokens, but descriptions seen in the wild stay
// well below this and longer values are overwhelmingly malformed input.
const defaultMaxMidLength = 16

const cnameLength = 16
