package clausewitz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
)

// Load implements the full sniff + ZIP-unwrap + dispatch pipeline: it opens
// path for reading (sharing read access with other processes, the way a
// running game might still hold the file open), sniffs for a ZIP
// container, and otherwise compares the leading bytes against binHeader and
// txtHeader to choose a parser. lookup is forwarded to the binary parser;
// it may be nil.
func Load(filePath string, binHeader, txtHeader string, lookup TokenLookup) (*Value, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return loadBytes(data, binHeader, txtHeader, lookup)
}

func loadBytes(data []byte, binHeader, txtHeader string, lookup TokenLookup) (*Value, error) {
	if len(data) >= 2 && data[0] == 0x50 && data[1] == 0x4B {
		entry, err := unwrapZip(data)
		if err != nil {
			return nil, err
		}
		return loadBytes(entry, binHeader, txtHeader, lookup)
	}

	if len(binHeader) != len(txtHeader) {
		return nil, fmt.Errorf("clausewitz: binHeader and txtHeader must be the same length")
	}
	n := len(binHeader)
	if len(data) < n {
		return nil, newParseError(ErrInvalidHeader, 0, "stream shorter than the expected header")
	}
	switch string(data[:n]) {
	case binHeader:
		return LoadBinary(data[n:], lookup, "")
	case txtHeader:
		return ParseBytes(data[n:])
	default:
		return nil, newParseError(ErrInvalidHeader, 0, "header matches neither %q nor %q", binHeader, txtHeader)
	}
}

// unwrapZip requires exactly one entry whose filename has a non-empty
// extension and returns its uncompressed bytes.
func unwrapZip(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var match *zip.File
	for _, f := range zr.File {
		if path.Ext(f.Name) == "" {
			continue
		}
		if match != nil {
			return nil, newParseError(ErrZipLayout, 0, "archive has more than one entry with a non-empty extension")
		}
		match = f
	}
	if match == nil {
		return nil, newParseError(ErrZipLayout, 0, "archive has no entry with a non-empty extension")
	}

	rc, err := match.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
