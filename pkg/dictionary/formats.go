package dictionary

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies how a word list file is encoded on disk.
type Format int

const (
	FormatText Format = iota // Plain text, one word per line
	FormatGzip               // gzip compressed text
	FormatZstd               // zstd compressed text
	FormatLZ4                // lz4 frame compressed text
)

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      Format
	Description string
	Extensions  []string
}

var supportedFormats = []FormatInfo{
	{Format: FormatGzip, Description: "gzip Word List", Extensions: []string{".gz", ".gzip"}},
	{Format: FormatZstd, Description: "Zstandard Word List", Extensions: []string{".zst", ".zstd"}},
	{Format: FormatLZ4, Description: "LZ4 Word List", Extensions: []string{".lz4"}},
	{Format: FormatText, Description: "Plain Text Word List", Extensions: []string{".txt", ""}},
}

func (f Format) String() string {
	if info, ok := GetFormatInfo(f); ok {
		return info.Description
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DetectFormat picks a format from the file extension. Anything not
// recognised as compressed is read as plain text, which covers extensionless
// system word lists such as /usr/share/dict/words.
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return info.Format
			}
		}
	}
	return FormatText
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format Format) (FormatInfo, bool) {
	for _, info := range supportedFormats {
		if info.Format == format {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// ListSupportedFormats returns all supported formats
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, len(supportedFormats))
	copy(formats, supportedFormats)
	return formats
}

// decoder wraps r so reads yield decompressed text for format.
func decoder(r io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return zr, nil
	case FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case FormatLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case FormatText:
		return io.NopCloser(r), nil
	}
	log.Warnf("Unknown word list format %d, reading as text", int(format))
	return io.NopCloser(r), nil
}
