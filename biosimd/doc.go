// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides low-level byte-table operations on DNA sequence
// data. This is a trimmed fork of the original biosimd package, kept down to
// the plain-ASCII complement/validation table it shares with
// ReverseComp8Inplace; the packed 4-bit/2-bit BAM-encoding routines and the
// AVX/SSE-dispatched variants are dropped because nothing in this repository
// reads packed BAM records.
package biosimd
