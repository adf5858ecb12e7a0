package util

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
)

// hashChunkSize is the read size used when streaming a file through the hash.
// Files are never buffered whole; royalty exports can run to hundreds of MB.
const hashChunkSize = 4096

// ContentChecksum computes the SHA1 of a file's content by streaming it
// through the hash in fixed-size chunks
func ContentChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to hash file: %w", err)
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileMetadata extracts basic filesystem metadata
func FileMetadata(path string) (size int64, mtime int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return info.Size(), info.ModTime().Unix(), nil
}
