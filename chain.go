package fat16

import (
	"encoding/binary"
	"fmt"

	"github.com/aligator/fat16/checkpoint"
)

const (
	// BadCluster marks a cluster with a defect. It never is part of a chain.
	BadCluster uint16 = 0xFFF7
	// EndOfChain is the lowest of the values which end a chain.
	EndOfChain uint16 = 0xFFF8
)

// NextCluster returns the FAT entry of cluster, which is the cluster
// following it in its chain or a marker value.
func (v *Volume) NextCluster(cluster uint16) (uint16, error) {
	var entry [2]byte
	if err := v.readAt(v.bpb.FATOffset()+int64(cluster)*2, entry[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(entry[:]), nil
}

// ChainWalker lazily follows a cluster chain through the FAT.
//
//	walker := volume.Chain(start)
//	for walker.Next() {
//		cluster := walker.Cluster()
//	}
//	if err := walker.Err(); err != nil {
//		...
//	}
type ChainWalker struct {
	volume *Volume

	cluster uint16
	started bool
	steps   uint32
	limit   uint32
	done    bool
	err     error
}

// Chain returns a walker over the chain starting at start.
// A walker can be iterated once.
func (v *Volume) Chain(start uint16) *ChainWalker {
	w := &ChainWalker{
		volume:  v,
		cluster: start,
		limit:   v.bpb.ClusterCount(),
	}

	if err := w.check(0, start); err != nil {
		w.fail(err)
	}

	return w
}

// Next advances to the next cluster of the chain. It returns false at the end
// of the chain or if an error occurred, which is then returned by Err.
func (w *ChainWalker) Next() bool {
	if w.done {
		return false
	}

	if w.started {
		next, err := w.volume.NextCluster(w.cluster)
		if err != nil {
			w.fail(err)
			return false
		}

		if next >= EndOfChain {
			w.done = true
			return false
		}

		if err := w.check(w.cluster, next); err != nil {
			w.fail(err)
			return false
		}

		w.cluster = next
	}
	w.started = true

	w.steps++
	if w.steps > w.limit {
		w.fail(checkpoint.From(fmt.Errorf("%w: chain is longer than the %d clusters of the volume, last cluster %d",
			ErrCorruptChain, w.limit, w.cluster)))
		return false
	}

	return true
}

// Cluster returns the cluster the walker is positioned on.
func (w *ChainWalker) Cluster() uint16 {
	return w.cluster
}

// Err returns the error which stopped the walk, if any.
func (w *ChainWalker) Err() error {
	return w.err
}

func (w *ChainWalker) fail(err error) {
	w.err = err
	w.done = true
}

// check validates a link from one cluster to the next one.
// The starting cluster of a chain is checked with from = 0.
func (w *ChainWalker) check(from, next uint16) error {
	switch {
	case next == BadCluster:
		return checkpoint.From(fmt.Errorf("%w: cluster %d links to a bad cluster", ErrCorruptChain, from))
	case next < 2:
		return checkpoint.From(fmt.Errorf("%w: cluster %d links to reserved cluster %d", ErrCorruptChain, from, next))
	case uint32(next) > w.volume.bpb.LastCluster():
		return checkpoint.From(fmt.Errorf("%w: cluster %d links to %d, behind the last cluster %d",
			ErrCorruptChain, from, next, w.volume.bpb.LastCluster()))
	}
	return nil
}

// Clusters returns the complete chain starting at start.
func (v *Volume) Clusters(start uint16) ([]uint16, error) {
	var clusters []uint16

	walker := v.Chain(start)
	for walker.Next() {
		clusters = append(clusters, walker.Cluster())
	}

	if err := walker.Err(); err != nil {
		return nil, err
	}

	return clusters, nil
}
