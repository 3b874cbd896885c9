// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/graveyard/lib/codec"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// Format identifies a bug file encoding.
type Format string

const (
	// FormatJSONL is one JSON object per line. Blank lines are
	// skipped.
	FormatJSONL Format = "jsonl"

	// FormatJSON is a single JSON array. Comments and trailing
	// commas are accepted (JSONC).
	FormatJSON Format = "json"

	// FormatYAML is a YAML sequence of bug mappings.
	FormatYAML Format = "yaml"

	// FormatCBOR is a CBOR array of bug maps, keyed by the JSON
	// field names.
	FormatCBOR Format = "cbor"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSONL, FormatJSON, FormatYAML, FormatCBOR}
}

// ParseFormat converts a format name ("jsonl", "json", "yaml",
// "cbor") to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSONL, FormatJSON, FormatYAML, FormatCBOR:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown bug file format %q (want jsonl, json, yaml or cbor)", name)
}

// DetectPath derives the format and compression of a bug file from
// its name: an optional .zst or .lz4 suffix selects compression, and
// the extension before it selects the format.
func DetectPath(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))
	compression := compressionOf(name)
	switch compression {
	case CompressionZstd:
		name = strings.TrimSuffix(name, ".zst")
	case CompressionLZ4:
		name = strings.TrimSuffix(name, ".lz4")
	}

	switch filepath.Ext(name) {
	case ".jsonl":
		return FormatJSONL, compression, nil
	case ".json", ".jsonc":
		return FormatJSON, compression, nil
	case ".yaml", ".yml":
		return FormatYAML, compression, nil
	case ".cbor":
		return FormatCBOR, compression, nil
	}
	return "", compression, fmt.Errorf("cannot determine bug file format from %q (want .jsonl, .json, .jsonc, .yaml, .yml or .cbor, optionally followed by .zst or .lz4)", filepath.Base(path))
}

func compressionOf(path string) Compression {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	}
	return CompressionNone
}

// LoadFile reads a bug file and builds a Store from it.
func LoadFile(path string) (*Store, error) {
	bugs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewStore(bugs)
}

// ReadFile reads and decodes a bug file without building a Store.
func ReadFile(path string) ([]bug.Bug, error) {
	format, compression, err := DetectPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bug file: %w", err)
	}
	defer file.Close()

	reader, closeReader, err := decompressReader(file, compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer closeReader()

	bugs, err := Decode(format, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bugs, nil
}

// Decode reads every bug from reader in the given format. It only
// decodes; validation happens in [NewStore].
func Decode(format Format, reader io.Reader) ([]bug.Bug, error) {
	switch format {
	case FormatJSONL:
		return decodeJSONL(reader)
	case FormatJSON:
		return decodeJSON(reader)
	case FormatYAML:
		return decodeYAML(reader)
	case FormatCBOR:
		return decodeCBOR(reader)
	}
	return nil, fmt.Errorf("unknown bug file format %q", format)
}

func decodeJSONL(reader io.Reader) ([]bug.Bug, error) {
	scanner := bufio.NewScanner(reader)

	// Records with long descriptions and timelines can exceed the
	// default 64KB scanner buffer.
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	bugs := []bug.Bug{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record bug.Bug
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if record.ID == "" {
			return nil, fmt.Errorf("line %d: missing id field", lineNumber)
		}
		bugs = append(bugs, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl: %w", err)
	}
	return bugs, nil
}

func decodeJSON(reader io.Reader) ([]bug.Bug, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	bugs := []bug.Bug{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &bugs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return bugs, nil
}

func decodeYAML(reader io.Reader) ([]bug.Bug, error) {
	bugs := []bug.Bug{}
	err := yaml.NewDecoder(reader).Decode(&bugs)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return bugs, nil
}

func decodeCBOR(reader io.Reader) ([]bug.Bug, error) {
	bugs := []bug.Bug{}
	err := codec.NewDecoder(reader).Decode(&bugs)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode cbor: %w", err)
	}
	return bugs, nil
}

// Encode writes bugs to writer in the given format.
func Encode(format Format, writer io.Writer, bugs []bug.Bug) error {
	if bugs == nil {
		bugs = []bug.Bug{}
	}
	switch format {
	case FormatJSONL:
		encoder := json.NewEncoder(writer)
		encoder.SetEscapeHTML(false)
		for index := range bugs {
			if err := encoder.Encode(&bugs[index]); err != nil {
				return fmt.Errorf("encode jsonl: %w", err)
			}
		}
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(bugs); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(bugs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	case FormatCBOR:
		if err := codec.NewEncoder(writer).Encode(bugs); err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown bug file format %q", format)
}

// WriteFile encodes bugs to path using the format and compression
// implied by its name (see [DetectPath]). The file is written to a
// temporary sibling and renamed into place, so a watcher never
// observes a partial file.
func WriteFile(path string, bugs []bug.Bug) error {
	format, compression, err := DetectPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, format, compression, bugs)
}

// WriteFileFormat is [WriteFile] with an explicit format. Compression
// still follows a .zst or .lz4 suffix, and the rest of the name is not
// inspected.
func WriteFileFormat(path string, format Format, bugs []bug.Bug) error {
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}
	return writeFile(path, format, compressionOf(path), bugs)
}

func writeFile(path string, format Format, compression Compression, bugs []bug.Bug) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create bug file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	writer, closeWriter, err := compressWriter(temporary, compression)
	if err != nil {
		temporary.Close()
		return err
	}
	if err := Encode(format, writer, bugs); err != nil {
		temporary.Close()
		return err
	}
	if err := closeWriter(); err != nil {
		temporary.Close()
		return fmt.Errorf("finish %s stream: %w", compression, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("close bug file: %w", err)
	}

	// CreateTemp makes the file 0600. Keep the mode of the file being
	// replaced, or use the usual 0644 for a new one.
	mode := os.FileMode(0o644)
	if existing, err := os.Stat(path); err == nil {
		mode = existing.Mode().Perm()
	}
	if err := os.Chmod(temporaryPath, mode); err != nil {
		return fmt.Errorf("set bug file mode: %w", err)
	}
	return os.Rename(temporaryPath, path)
}
