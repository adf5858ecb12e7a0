package sniff

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/franz/royaltyflow/internal/util"
)

const (
	// detectSampleSize is how much of the file the statistical detector sees
	detectSampleSize = 10 * 1024

	// detectMinConfidence rejects low-certainty statistical guesses
	detectMinConfidence = 70

	// trialSampleSize is how many bytes a fallback encoding must decode
	trialSampleSize = 1000
)

// encodingPriority is the trial order when statistical detection is
// inconclusive. Mirrors the encodings third-party royalty exports actually
// arrive in.
var encodingPriority = []string{"utf-8", "latin-1", "iso-8859-1", "cp1252", "utf-16"}

// DetectEncoding determines the character encoding of a text file.
// It runs a statistical byte analysis over the first 10 KB and accepts the
// result only above a confidence threshold; otherwise each encoding in the
// priority list is trialed with a partial decode. Falls back to utf-8.
func DetectEncoding(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "utf-8"
	}
	defer f.Close()

	sample := make([]byte, detectSampleSize)
	n, err := f.Read(sample)
	if err != nil && err != io.EOF {
		return "utf-8"
	}
	sample = sample[:n]

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(sample); err == nil && result != nil {
		if result.Confidence > detectMinConfidence {
			if name := normalizeEncodingName(result.Charset); name != "" {
				util.DebugLog("Encoding detected: %s (confidence %d)", name, result.Confidence)
				return name
			}
		}
	}

	trial := sample
	if len(trial) > trialSampleSize {
		trial = trial[:trialSampleSize]
	}
	for _, name := range encodingPriority {
		if trialDecode(trial, name) {
			util.DebugLog("Encoding fallback: %s", name)
			return name
		}
	}

	return "utf-8"
}

// normalizeEncodingName maps detector charset labels onto the names used by
// the decoder table, or "" for charsets we cannot decode.
func normalizeEncodingName(charset string) string {
	switch strings.ToLower(charset) {
	case "utf-8", "ascii", "us-ascii":
		return "utf-8"
	case "iso-8859-1":
		return "iso-8859-1"
	case "iso-8859-15", "windows-1252":
		return "cp1252"
	case "utf-16le", "utf-16be", "utf-16":
		return "utf-16"
	default:
		return ""
	}
}

func decoderFor(name string) encoding.Encoding {
	switch name {
	case "latin-1", "iso-8859-1":
		return charmap.ISO8859_1
	case "cp1252":
		return charmap.Windows1252
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	default:
		return nil // utf-8 needs no transform
	}
}

// trialDecode checks whether a byte sample decodes cleanly in an encoding
func trialDecode(sample []byte, name string) bool {
	if name == "utf-8" {
		return utf8.Valid(sample)
	}
	dec := decoderFor(name)
	if dec == nil {
		return false
	}
	_, err := io.ReadAll(dec.NewDecoder().Reader(bytes.NewReader(sample)))
	return err == nil
}

// decodeReader wraps a raw file reader with the transform for an encoding
func decodeReader(r io.Reader, name string) io.Reader {
	if dec := decoderFor(name); dec != nil {
		return dec.NewDecoder().Reader(r)
	}
	return r
}
