package blockio

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/lcb/blocks"
)

func groupByBlock(instances []blocks.Instance) (map[int64][]blocks.Instance, []int64) {
	byBlock := make(map[int64][]blocks.Instance)
	for _, inst := range instances {
		byBlock[inst.Block] = append(byBlock[inst.Block], inst)
	}
	ids := make([]int64, 0, len(byBlock))
	for id := range byBlock {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return byBlock, ids
}

// WriteCoords writes blocks_coords.txt: a column header, always present,
// followed by one "Block #N" section per block and one row per instance —
// chromosome description, strand, 1-based start, 1-based end, length —
// per spec.md §6.3. With zero instances, only the header is written.
func WriteCoords(w io.Writer, instances []blocks.Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Seq_id\tStrand\tStart\tEnd\tLength")

	byBlock, ids := groupByBlock(instances)
	for _, id := range ids {
		fmt.Fprintf(bw, "Block #%d\n", id)
		for _, inst := range byBlock[id] {
			strand := '+'
			if inst.Strand < 0 {
				strand = '-'
			}
			fmt.Fprintf(bw, "%s\t%c\t%d\t%d\t%d\n", inst.ChrDescription, strand, inst.Start+1, inst.End, inst.Length())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
