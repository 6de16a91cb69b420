// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplement(t *testing.T) {
	assert.Equal(t, byte('T'), Complement('A'))
	assert.Equal(t, byte('A'), Complement('T'))
	assert.Equal(t, byte('G'), Complement('C'))
	assert.Equal(t, byte('C'), Complement('G'))
	assert.Equal(t, byte('N'), Complement('N'))
	assert.Equal(t, byte('N'), Complement('x'))
}

func TestReverseComp8Inplace(t *testing.T) {
	s := []byte("ACGTACGT")
	ReverseComp8Inplace(s)
	assert.Equal(t, "ACGTACGT", string(s))

	s2 := []byte("AACCGGTT")
	ReverseComp8Inplace(s2)
	assert.Equal(t, "AACCGGTT", string(s2))

	s3 := []byte("GATTACA")
	ReverseComp8Inplace(s3)
	assert.Equal(t, "TGTAATC", string(s3))
}

func TestReverseComp8(t *testing.T) {
	dst := make([]byte, 4)
	ReverseComp8(dst, []byte("ACGT"))
	assert.Equal(t, "ACGT", string(dst))
}

func TestIsNonACGTNPresent(t *testing.T) {
	assert.False(t, IsNonACGTNPresent([]byte("ACGTN")))
	assert.True(t, IsNonACGTNPresent([]byte("ACGTX")))
}

func TestCleanASCIISeqInplace(t *testing.T) {
	s := []byte("acgtnX")
	CleanASCIISeqInplace(s)
	assert.Equal(t, "ACGTNN", string(s))
}
