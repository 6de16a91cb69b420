package blockio

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/grailbio/lcb/graph"
	"github.com/pkg/errors"
)

// rawRecord mirrors the on-disk layout exactly: encoding/binary reads
// fixed-size struct fields in declaration order, with no padding, regardless
// of the field layout Go itself would choose in memory.
type rawRecord struct {
	ChrID    uint32
	Position uint64
	VertexID int64
}

// ReadJunctions decodes a stream of little-endian (chr_id uint32, position
// uint64, vertex_id int64) records per spec.md §6.1, reading until EOF.
// Records must already be sorted by (chr_id, position); ReadJunctions
// rejects a stream that isn't, citing the offending record's ordinal.
func ReadJunctions(r io.Reader) ([]graph.JunctionRecord, error) {
	br := bufio.NewReader(r)
	var records []graph.JunctionRecord
	havePrev := false
	var prevChr uint32
	var prevPos uint64
	for i := 0; ; i++ {
		var raw rawRecord
		err := binary.Read(br, binary.LittleEndian, &raw)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "blockio: reading junction record %d", i)
		}
		if havePrev && (raw.ChrID < prevChr || (raw.ChrID == prevChr && raw.Position < prevPos)) {
			return nil, errors.Errorf(
				"blockio: junction record %d (chr=%d pos=%d) is out of order after chr=%d pos=%d",
				i, raw.ChrID, raw.Position, prevChr, prevPos)
		}
		prevChr, prevPos, havePrev = raw.ChrID, raw.Position, true
		records = append(records, graph.JunctionRecord{ChrID: raw.ChrID, Position: raw.Position, VertexID: raw.VertexID})
	}
}
