package blockio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/lcb/biosimd"
	"github.com/grailbio/lcb/blocks"
	"github.com/grailbio/lcb/graph"
	"github.com/pkg/errors"
)

const sequenceLineWidth = 80

// WriteSequences writes blocks_sequences.fasta: one FASTA record per
// instance, with a header of the form
// `>Seq="<chr>",Strand='±',Block_id=N,Start=s,End=e` (1-based, conventional
// coordinates) and a body holding the chromosome slice, reverse-complemented
// on the minus strand, wrapped at 80 columns -- the convention in
// BlocksFinder::OutputLines.
func WriteSequences(w io.Writer, storage *graph.Storage, instances []blocks.Instance) error {
	bw := bufio.NewWriter(w)
	for _, inst := range instances {
		if inst.ChrID < 0 || inst.ChrID >= storage.NumChromosomes() {
			return errors.Errorf("blockio: instance references unknown chromosome id %d", inst.ChrID)
		}
		full := storage.ChrSequence(inst.ChrID)
		if inst.End > uint64(len(full)) || inst.Start >= inst.End {
			return errors.Errorf("blockio: instance [%d,%d) out of range for chromosome %q (length %d)",
				inst.Start, inst.End, inst.ChrDescription, len(full))
		}
		slice := full[inst.Start:inst.End]
		body := make([]byte, len(slice))
		if inst.Strand < 0 {
			biosimd.ReverseComp8(body, slice)
		} else {
			copy(body, slice)
		}

		strand := '+'
		if inst.Strand < 0 {
			strand = '-'
		}
		fmt.Fprintf(bw, ">Seq=\"%s\",Strand='%c',Block_id=%d,Start=%d,End=%d\n",
			inst.ChrDescription, strand, inst.Block, inst.Start+1, inst.End)
		for i := 0; i < len(body); i += sequenceLineWidth {
			end := i + sequenceLineWidth
			if end > len(body) {
				end = len(body)
			}
			bw.Write(body[i:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
