package palette

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// mappingFileSize is a 4-byte color count, 256 packed RGBA colors, and the
// 32768-byte nearest-color index: the concrete on-disk shape this module
// uses to implement spec.md §6's preload format (which specifies the flat
// mapping dump but leaves the accompanying palette storage to "the
// caller" — this is one such caller-side implementation).
const mappingFileSize = 4 + 256*4 + 32768

// SaveMapping writes the Store's palette and nearest-color index to a new
// file in dir, named with a random UUID, and returns its path. Replaying
// it with LoadMapping reconstructs an equivalent Store without repeating
// the O(colorCount * 32768) index construction in BuildIndex.
func (s *Store) SaveMapping(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("palette: save mapping: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+".palettemap")

	buf := make([]byte, 0, mappingFileSize)
	var word [4]byte

	binary.BigEndian.PutUint32(word[:], uint32(s.Count))
	buf = append(buf, word[:]...)

	for _, c := range s.Colors {
		binary.BigEndian.PutUint32(word[:], c)
		buf = append(buf, word[:]...)
	}
	buf = append(buf, s.Mapping[:]...)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("palette: save mapping: %w", err)
	}
	return path, nil
}

// LoadMapping reads a file written by SaveMapping and returns the Store it
// describes.
func LoadMapping(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: load mapping: %w", err)
	}
	if len(data) != mappingFileSize {
		return nil, fmt.Errorf("palette: load mapping: %s has %d bytes, want %d", path, len(data), mappingFileSize)
	}

	s := &Store{Count: int(binary.BigEndian.Uint32(data[:4]))}
	for i := 0; i < 256; i++ {
		s.Colors[i] = binary.BigEndian.Uint32(data[4+i*4:])
	}
	copy(s.Mapping[:], data[4+256*4:])

	s.computeBias()
	s.SetDitherStrength(1.0)
	return s, nil
}
