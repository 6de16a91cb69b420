package blockio

import (
	"io"

	"github.com/grailbio/lcb/encoding/fasta"
	"github.com/grailbio/lcb/graph"
	"github.com/pkg/errors"
)

// LoadChromosomes parses the companion FASTA file into graph.Chromosome
// records, one per sequence in file order, cleaned to ACGTN per spec.md
// §6.1's "FASTA ingestion" note.
func LoadChromosomes(r io.Reader) ([]graph.Chromosome, error) {
	f, err := fasta.New(r, fasta.OptClean)
	if err != nil {
		return nil, errors.Wrap(err, "blockio: parsing FASTA")
	}
	names := f.SeqNames()
	chrs := make([]graph.Chromosome, len(names))
	for i, name := range names {
		n, err := f.Len(name)
		if err != nil {
			return nil, errors.Wrapf(err, "blockio: length of sequence %q", name)
		}
		seq, err := f.Get(name, 0, n)
		if err != nil {
			return nil, errors.Wrapf(err, "blockio: reading sequence %q", name)
		}
		chrs[i] = graph.Chromosome{Description: name, Sequence: []byte(seq)}
	}
	return chrs, nil
}
