// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import "github.com/grailbio/base/log"

// complementTable maps an ASCII base to its Watson-Crick complement; any
// byte outside {A,C,G,T,N} (upper or lower case) maps to 'N', matching the
// original revComp8Table's permissive behavior.
var complementTable = [256]byte{}

func init() {
	for i := range complementTable {
		complementTable[i] = 'N'
	}
	pairs := []struct{ from, to byte }{
		{'A', 'T'}, {'a', 'T'},
		{'T', 'A'}, {'t', 'A'},
		{'C', 'G'}, {'c', 'G'},
		{'G', 'C'}, {'g', 'C'},
		{'N', 'N'}, {'n', 'N'},
	}
	for _, p := range pairs {
		complementTable[p.from] = p.to
	}
}

// Complement returns the Watson-Crick complement of an ASCII base. Anything
// that isn't one of A/C/G/T/N (case-insensitive) maps to 'N'.
func Complement(ch byte) byte {
	return complementTable[ch]
}

// IsNonACGTNPresent reports whether ascii8 contains any byte other than
// A/C/G/T/N (case-insensitive).
func IsNonACGTNPresent(ascii8 []byte) bool {
	for _, ch := range ascii8 {
		switch ch {
		case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		default:
			return true
		}
	}
	return false
}

// CleanASCIISeqInplace uppercases ascii8 and replaces any byte outside
// A/C/G/T/N with 'N', in place.
func CleanASCIISeqInplace(ascii8 []byte) {
	for i, ch := range ascii8 {
		switch ch {
		case 'A', 'C', 'G', 'T', 'N':
		case 'a':
			ascii8[i] = 'A'
		case 'c':
			ascii8[i] = 'C'
		case 'g':
			ascii8[i] = 'G'
		case 't':
			ascii8[i] = 'T'
		default:
			ascii8[i] = 'N'
		}
	}
}

// ReverseComp8Inplace reverse-complements ascii8 in place, mapping
// A/a->T, C/c->G, G/g->C, T/t->A, and everything else to 'N'.
func ReverseComp8Inplace(ascii8 []byte) {
	nByte := len(ascii8)
	nByteDiv2 := nByte >> 1
	for idx, invIdx := 0, nByte-1; idx != nByteDiv2; idx, invIdx = idx+1, invIdx-1 {
		ascii8[idx], ascii8[invIdx] = complementTable[ascii8[invIdx]], complementTable[ascii8[idx]]
	}
	if nByte&1 == 1 {
		ascii8[nByteDiv2] = complementTable[ascii8[nByteDiv2]]
	}
}

// ReverseComp8 writes the reverse complement of src to dst. It panics if
// len(dst) != len(src).
func ReverseComp8(dst, src []byte) {
	if len(dst) != len(src) {
		log.Panicf("ReverseComp8 requires len(dst) == len(src), got %d, %d", len(dst), len(src))
	}
	nByte := len(src)
	for idx, invIdx := 0, nByte-1; idx != nByte; idx, invIdx = idx+1, invIdx-1 {
		dst[idx] = complementTable[src[invIdx]]
	}
}
