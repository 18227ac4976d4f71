// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package util provides auxiliary functions internally used in the
// negotiation package.
package util

import (
	"bytes"
	"runtime"
	"strconv"

	"github.com/pion/randutil"
)

const runesAlpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Use global random generator to properly seed by crypto grade random.
var globalMathRandomGenerator = randutil.NewMathRandomGenerator() //nolint:gochecknoglobals

// MathRandAlpha generates a mathematical random alphabet sequence of the
// requested length.
func MathRandAlpha(n int) string {
	return globalMathRandomGenerator.GenerateString(n, runesAlpha)
}

// RandUint32 generates a mathematical random uint32.
func RandUint32() uint32 {
	return globalMathRandomGenerator.Uint32()
}

// GoroutineID returns the id of the calling goroutine. Only used for
// the fail-fast reentrancy assertion of the dispatch queue, never for
// program logic.
func GoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		id, err := strconv.ParseUint(string(buf[:i]), 10, 64)
		if err == nil {
			return id
		}
	}

	return 0
}
