// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the graveyard's CBOR configuration.
//
// CBOR is the binary sibling of the JSONL bug file: the loader accepts
// .cbor datasets, the export command writes them, and the dataset
// fingerprint hashes the CBOR encoding of the records. Fingerprints
// are only stable if every encoder agrees byte-for-byte, so the
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(records)
//	err = codec.Unmarshal(data, &records)
//
// Record types carry only `json` (and `yaml`) tags. fxamacker/cbor
// reads `json` tags when `cbor` tags are absent, so one tag set names
// fields identically in every format.
package codec
