package main

import (
	"fmt"
	"io"

	"github.com/aligator/fat16"
	"github.com/aligator/fat16/checkpoint"
	"github.com/aligator/fat16/internal/humanize"
	"github.com/spf13/afero"
)

// session is a mounted image together with its working directory. All
// commands of the CLI and the shell are implemented on it.
type session struct {
	cursor *fat16.Cursor
	host   afero.Fs
}

func (s *session) info(w io.Writer) error {
	volume := s.cursor.Volume()
	bpb := volume.BPB()

	label, err := volume.Label()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Label:               %s\n", label)
	fmt.Fprintf(w, "OEM name:            %s\n", bpb.OEMName())
	fmt.Fprintf(w, "Bytes per sector:    %d\n", bpb.BytesPerSector)
	fmt.Fprintf(w, "Sectors per cluster: %d\n", bpb.SectorsPerCluster)
	fmt.Fprintf(w, "Cluster size:        %s\n", humanize.Bytes(uint64(bpb.ClusterSize())))
	fmt.Fprintf(w, "FATs:                %d at offset %d\n", bpb.NumFATs, bpb.FATOffset())
	fmt.Fprintf(w, "Root entries:        %d at offset %d\n", bpb.RootEntryCount, bpb.RootOffset())
	fmt.Fprintf(w, "Data region:         offset %d\n", bpb.DataOffset())
	fmt.Fprintf(w, "Clusters:            %d\n", bpb.ClusterCount())
	fmt.Fprintf(w, "Total size:          %s\n", humanize.Sectors(uint64(bpb.TotalSectors()), uint64(bpb.BytesPerSector)))
	return nil
}

func (s *session) ls(w io.Writer, path string, long bool) error {
	entries, err := s.cursor.ListPath(path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !long {
			fmt.Fprintln(w, entry)
			continue
		}

		stat := entry.FileInfo()
		kind := "F"
		if entry.IsDir() {
			kind = "D"
		}

		modTime := "                "
		if !stat.ModTime().IsZero() {
			modTime = stat.ModTime().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s %8s %s %s\n", kind, humanize.Bytes(uint64(stat.Size())), modTime, entry.FormattedName())
	}

	return nil
}

func (s *session) cd(path string) error {
	return s.cursor.ChangeDirectory(path)
}

func (s *session) pwd(w io.Writer) {
	fmt.Fprintln(w, s.cursor.PathString())
}

func (s *session) file(path string) (*fat16.EntryNode, error) {
	node, err := s.cursor.Lookup(path)
	if err != nil {
		return nil, err
	}

	if node.IsDir() {
		return nil, checkpoint.From(fmt.Errorf("%w: %s", fat16.ErrIsDirectory, path))
	}

	return node, nil
}

func (s *session) cat(w io.Writer, path string) error {
	node, err := s.file(path)
	if err != nil {
		return err
	}

	f := s.cursor.Volume().OpenFile(node)
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

func (s *session) cpout(w io.Writer, src, dst string) error {
	node, err := s.file(src)
	if err != nil {
		return err
	}

	n, err := s.cursor.Volume().CopyOut(node, s.host, dst)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "copied %s to %s (%s)\n", node.FormattedName(), dst, humanize.Bytes(uint64(n)))
	return nil
}
