// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the stream compression wrapped around a bug
// file. Archived graveyards are usually zstd; lz4 is accepted for
// files produced by faster pipelines.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// decompressReader wraps reader according to compression. The
// returned close function releases decoder resources; it does not
// close the underlying reader.
func decompressReader(reader io.Reader, compression Compression) (io.Reader, func(), error) {
	switch compression {
	case CompressionNone:
		return reader, func() {}, nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return decoder, decoder.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(reader), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported compression %q", compression)
}

// compressWriter wraps writer according to compression. The returned
// close function flushes the compressed stream and must be called
// before the underlying writer is closed.
func compressWriter(writer io.Writer, compression Compression) (io.Writer, func() error, error) {
	switch compression {
	case CompressionNone:
		return writer, func() error { return nil }, nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(writer, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, encoder.Close, nil
	case CompressionLZ4:
		encoder := lz4.NewWriter(writer)
		return encoder, encoder.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported compression %q", compression)
}
