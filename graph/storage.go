package graph

import (
	"sort"
	"sync/atomic"

	"github.com/grailbio/lcb/biosimd"
	"github.com/pkg/errors"
)

// Chromosome is one named, cleaned DNA sequence.
type Chromosome struct {
	Description string
	Sequence    []byte
}

// JunctionRecord is a single record as produced by the upstream de Bruijn
// graph construction tool: a position in a chromosome, and the signed
// vertex-id of the graph vertex it corresponds to.
type JunctionRecord struct {
	ChrID     uint32
	Position  uint64
	VertexID  int64
}

type junctionRecord struct {
	VertexID int64
	Position uint64
}

// Handle identifies one occurrence of a vertex: a chromosome, an ordinal
// within that chromosome's junction array, and the strand the occurrence is
// being read on. Handle is a cheap, comparable value type so instances can
// hold it directly instead of a pointer.
type Handle struct {
	Chr    int
	Idx    int
	Strand int8
}

// Storage is the read-only index over a compacted de Bruijn graph: per
// chromosome junction positions plus the original letters, and for every
// surviving vertex-id the list of its occurrences (forward hits, plus the
// mirrored reverse-strand hits of the negated vertex-id).
type Storage struct {
	k                  int
	abundanceThreshold int

	chromosomes []Chromosome
	junctions   [][]junctionRecord
	used        [][]uint32

	occurrences map[int64][]Handle
	filtered    map[int64]bool
}

// NewStorage builds a Storage from chromosome sequences and junction records.
// records must be sorted by (ChrID, Position); this is validated here, along
// with every derived forward edge length being positive and the last
// junction on each chromosome being consistent with k and the sequence
// length.
func NewStorage(k, abundanceThreshold int, chromosomes []Chromosome, records []JunctionRecord) (*Storage, error) {
	if k <= 0 {
		return nil, errors.Errorf("graph: k must be positive, got %d", k)
	}
	s := &Storage{
		k:                  k,
		abundanceThreshold: abundanceThreshold,
		chromosomes:        chromosomes,
		junctions:          make([][]junctionRecord, len(chromosomes)),
		used:               make([][]uint32, len(chromosomes)),
	}

	havePrev := false
	var prevChr uint32
	var prevPos uint64
	for _, rec := range records {
		if int(rec.ChrID) >= len(chromosomes) {
			return nil, errors.Errorf("graph: junction references unknown chromosome id %d", rec.ChrID)
		}
		if havePrev && (rec.ChrID < prevChr || (rec.ChrID == prevChr && rec.Position < prevPos)) {
			return nil, errors.Errorf("graph: junction records are not sorted by (chr,pos): chr=%d pos=%d follows chr=%d pos=%d",
				rec.ChrID, rec.Position, prevChr, prevPos)
		}
		prevChr, prevPos, havePrev = rec.ChrID, rec.Position, true
		s.junctions[rec.ChrID] = append(s.junctions[rec.ChrID], junctionRecord{VertexID: rec.VertexID, Position: rec.Position})
	}
	for chr := range s.junctions {
		s.used[chr] = make([]uint32, len(s.junctions[chr]))
	}

	for chr, recs := range s.junctions {
		for i := 0; i+1 < len(recs); i++ {
			length := int64(recs[i+1].Position) - int64(recs[i].Position)
			if length <= 0 {
				return nil, errors.Errorf("graph: non-positive edge length derived at chr=%d idx=%d (k=%d)", chr, i, k)
			}
		}
		if n := len(recs); n > 0 {
			last := recs[n-1]
			seqLen := uint64(len(chromosomes[chr].Sequence))
			if last.Position+uint64(k) > seqLen {
				return nil, errors.Errorf("graph: junction at chr=%d pos=%d inconsistent with k=%d and sequence length %d",
					chr, last.Position, k, seqLen)
			}
		}
	}

	s.buildOccurrences()
	return s, nil
}

func (s *Storage) buildOccurrences() {
	counts := make(map[int64]int)
	for _, recs := range s.junctions {
		for _, rec := range recs {
			counts[rec.VertexID]++
			counts[-rec.VertexID]++
		}
	}
	// A vertex's total occurrences are its forward hits plus their mirrored
	// reverse-strand hits, i.e. counts[v] + counts[-v].
	s.filtered = make(map[int64]bool)
	for v, c := range counts {
		if c+counts[-v] > s.abundanceThreshold {
			s.filtered[v] = true
		}
	}
	s.occurrences = make(map[int64][]Handle)
	for chr, recs := range s.junctions {
		for idx, rec := range recs {
			if !s.filtered[rec.VertexID] {
				s.occurrences[rec.VertexID] = append(s.occurrences[rec.VertexID], Handle{Chr: chr, Idx: idx, Strand: 1})
			}
			if !s.filtered[-rec.VertexID] {
				s.occurrences[-rec.VertexID] = append(s.occurrences[-rec.VertexID], Handle{Chr: chr, Idx: idx, Strand: -1})
			}
		}
	}
}

// K returns the k-mer size this Storage was constructed with.
func (s *Storage) K() int { return s.k }

// NumChromosomes returns the number of chromosomes indexed.
func (s *Storage) NumChromosomes() int { return len(s.chromosomes) }

// NumJunctions returns the number of junctions on the given chromosome.
func (s *Storage) NumJunctions(chr int) int { return len(s.junctions[chr]) }

// ChrDescription returns the chromosome's Description as passed to
// NewStorage. blockio.LoadChromosomes fills it with the FASTA sequence name,
// the header text before the first space; the rest of the header line is not
// kept.
func (s *Storage) ChrDescription(chr int) string { return s.chromosomes[chr].Description }

// ChrSequence returns the chromosome's cleaned letters.
func (s *Storage) ChrSequence(chr int) []byte { return s.chromosomes[chr].Sequence }

// ChrLength returns the length, in bases, of the given chromosome.
func (s *Storage) ChrLength(chr int) uint64 { return uint64(len(s.chromosomes[chr].Sequence)) }

// Begin returns an iterator at the first junction of chr on the forward
// strand.
func (s *Storage) Begin(chr int) JunctionIterator {
	return JunctionIterator{s: s, h: Handle{Chr: chr, Idx: 0, Strand: 1}}
}

// End returns an iterator at the last junction of chr on the forward strand.
func (s *Storage) End(chr int) JunctionIterator {
	return JunctionIterator{s: s, h: Handle{Chr: chr, Idx: len(s.junctions[chr]) - 1, Strand: 1}}
}

// IteratorAt returns the iterator for the given handle.
func (s *Storage) IteratorAt(h Handle) JunctionIterator {
	return JunctionIterator{s: s, h: h}
}

// Occurrences returns every occurrence of the signed vertex-id v: every
// forward-strand junction recorded with vertex-id v, plus the reverse-strand
// mirror of every junction recorded with vertex-id -v. Returns nil if v was
// filtered out by the abundance threshold, or never occurs.
func (s *Storage) Occurrences(v int64) []Handle { return s.occurrences[v] }

// IsFiltered reports whether v was excluded at load time for exceeding the
// abundance threshold.
func (s *Storage) IsFiltered(v int64) bool { return s.filtered[v] }

// AllVertices returns every surviving vertex-id, in ascending order, for
// deterministic iteration during source discovery.
func (s *Storage) AllVertices() []int64 {
	vs := make([]int64, 0, len(s.occurrences))
	for v := range s.occurrences {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

func (s *Storage) setUsed(chr, idx int) {
	atomic.StoreUint32(&s.used[chr][idx], 1)
}

func (s *Storage) isUsed(chr, idx int) bool {
	return atomic.LoadUint32(&s.used[chr][idx]) != 0
}

// JunctionIterator is a cursor over one chromosome's junction array, reading
// either the forward or the reverse strand. On the reverse strand, Advance
// moves toward lower array indices, VertexID is negated, and OutgoingLetter
// reads the complement of the preceding base.
type JunctionIterator struct {
	s *Storage
	h Handle
}

// Handle returns the (chr, idx, strand) triple this iterator refers to.
func (it JunctionIterator) Handle() Handle { return it.h }

// Chr returns the chromosome index.
func (it JunctionIterator) Chr() int { return it.h.Chr }

// Idx returns the ordinal within the chromosome's junction array.
func (it JunctionIterator) Idx() int { return it.h.Idx }

// Strand returns +1 for forward, -1 for reverse.
func (it JunctionIterator) Strand() int8 { return it.h.Strand }

// Valid reports whether the iterator refers to an in-bounds junction.
func (it JunctionIterator) Valid() bool {
	return it.h.Idx >= 0 && it.h.Idx < len(it.s.junctions[it.h.Chr])
}

// Position returns the physical, strand-independent position of the
// junction in its chromosome.
func (it JunctionIterator) Position() uint64 {
	return it.s.junctions[it.h.Chr][it.h.Idx].Position
}

// VertexID returns the signed vertex-id as seen from this iterator's strand.
func (it JunctionIterator) VertexID() int64 {
	v := it.s.junctions[it.h.Chr][it.h.Idx].VertexID
	if it.h.Strand < 0 {
		return -v
	}
	return v
}

// Used reports whether this junction has been claimed by a committed block.
func (it JunctionIterator) Used() bool { return it.s.isUsed(it.h.Chr, it.h.Idx) }

// SetUsed marks this junction as claimed. Idempotent.
func (it JunctionIterator) SetUsed() { it.s.setUsed(it.h.Chr, it.h.Idx) }

// OutgoingLetter returns the base immediately beyond this junction along its
// strand: sequence[pos+k] on the forward strand, or the complement of
// sequence[pos-1] on the reverse strand. Returns 0 if there is no such base.
func (it JunctionIterator) OutgoingLetter() byte {
	seq := it.s.chromosomes[it.h.Chr].Sequence
	pos := it.Position()
	if it.h.Strand > 0 {
		p := pos + uint64(it.s.k)
		if p >= uint64(len(seq)) {
			return 0
		}
		return seq[p]
	}
	if pos == 0 {
		return 0
	}
	return biosimd.Complement(seq[pos-1])
}

// Advance moves one junction forward along the strand's direction of travel
// (increasing array index on the forward strand, decreasing on the reverse).
// Reports false if there is no next junction.
func (it JunctionIterator) Advance() (JunctionIterator, bool) {
	nextIdx := it.h.Idx + int(it.h.Strand)
	if nextIdx < 0 || nextIdx >= len(it.s.junctions[it.h.Chr]) {
		return JunctionIterator{}, false
	}
	return JunctionIterator{s: it.s, h: Handle{Chr: it.h.Chr, Idx: nextIdx, Strand: it.h.Strand}}, true
}

// Retreat moves one junction backward along the strand's direction of
// travel. Reports false if there is no previous junction.
func (it JunctionIterator) Retreat() (JunctionIterator, bool) {
	prevIdx := it.h.Idx - int(it.h.Strand)
	if prevIdx < 0 || prevIdx >= len(it.s.junctions[it.h.Chr]) {
		return JunctionIterator{}, false
	}
	return JunctionIterator{s: it.s, h: Handle{Chr: it.h.Chr, Idx: prevIdx, Strand: it.h.Strand}}, true
}
