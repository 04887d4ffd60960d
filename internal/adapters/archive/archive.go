// Package archive exports game snapshots as zstd-compressed files: one JSON
// header line followed by the JSON snapshot.
package archive

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
)

// Format identifies archive files
const Format = "spacetraders-economy/snapshot"

var ErrUnsupportedArchive = errors.New("unsupported archive")

// Header is readable without decoding the snapshot body
type Header struct {
	Format          string    `json:"format"`
	SnapshotVersion int       `json:"snapshot_version"`
	GameID          string    `json:"game_id"`
	Turn            int       `json:"turn"`
	SavedAt         time.Time `json:"saved_at"`
}

// Write compresses snap into w
func Write(w io.Writer, snap simulation.Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	header := Header{
		Format:          Format,
		SnapshotVersion: snap.Version,
		GameID:          snap.ID,
		Turn:            snap.Turn,
		SavedAt:         snap.SavedAt,
	}
	hb, err := json.Marshal(header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("header encode: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decompresses an archive produced by Write
func Read(r io.Reader) (Header, simulation.Snapshot, error) {
	var (
		header Header
		snap   simulation.Snapshot
	)
	dec, err := zstd.NewReader(r)
	if err != nil {
		return header, snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return header, snap, fmt.Errorf("%w: missing header: %v", ErrUnsupportedArchive, err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return header, snap, fmt.Errorf("%w: bad header: %v", ErrUnsupportedArchive, err)
	}
	if header.Format != Format {
		return header, snap, fmt.Errorf("%w: format %q", ErrUnsupportedArchive, header.Format)
	}
	if header.SnapshotVersion != simulation.SnapshotVersion {
		return header, snap, fmt.Errorf("%w: snapshot version %d, want %d",
			ErrUnsupportedArchive, header.SnapshotVersion, simulation.SnapshotVersion)
	}

	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return header, snap, fmt.Errorf("snapshot decode: %w", err)
	}
	return header, snap, nil
}

// WriteFile exports to path, creating parent directories
func WriteFile(path string, snap simulation.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile imports an archive from path
func ReadFile(path string) (Header, simulation.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, simulation.Snapshot{}, err
	}
	defer f.Close()
	return Read(f)
}
