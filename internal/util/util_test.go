// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMathRandAlpha(t *testing.T) {
	assert.Len(t, MathRandAlpha(10), 10)
	assert.Regexp(t, "^[a-zA-Z]+$", MathRandAlpha(10))
}

func TestGoroutineID(t *testing.T) {
	id := GoroutineID()
	assert.NotZero(t, id)
	assert.Equal(t, id, GoroutineID())

	otherID := make(chan uint64)
	go func() {
		otherID <- GoroutineID()
	}()
	assert.NotEqual(t, id, <-otherID)
}
