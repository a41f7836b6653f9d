// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// Encoder compresses serialized payloads using the best encoding the client
// accepts. Encoding selection is strict priority br > gzip > deflate; the
// Accept-Encoding order recorded on the profile plays no role. Exactly one
// encoding is ever applied.
type Encoder struct {
	// Enabled is the global compression toggle. When false every payload is
	// returned identity-encoded.
	Enabled bool

	// Level is the compression level, 1 (fastest) to 9 (best). Applied to
	// all three codecs; brotli accepts the same range.
	Level int
}

// Encode compresses body for the given client. It returns the encoded bytes
// and the chosen Content-Encoding token. When compression is disabled or the
// client accepts no supported encoding, the original bytes are returned with
// the identity token.
func (e Encoder) Encode(body []byte, profile ClientProfile) ([]byte, string, error) {
	if !e.Enabled || len(profile.AcceptedEncodings) == 0 {
		return body, EncodingIdentity, nil
	}

	switch {
	case profile.AcceptsEncoding(EncodingBrotli):
		return e.compress(body, EncodingBrotli)
	case profile.AcceptsEncoding(EncodingGzip):
		return e.compress(body, EncodingGzip)
	case profile.AcceptsEncoding(EncodingDeflate):
		return e.compress(body, EncodingDeflate)
	default:
		return body, EncodingIdentity, nil
	}
}

func (e Encoder) compress(body []byte, token string) ([]byte, string, error) {
	var buf bytes.Buffer

	w, err := e.newWriter(&buf, token)
	if err != nil {
		return nil, "", err
	}
	if _, err := w.Write(body); err != nil {
		return nil, "", fmt.Errorf("%s write failed: %w", token, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%s close failed: %w", token, err)
	}

	return buf.Bytes(), token, nil
}

func (e Encoder) newWriter(buf *bytes.Buffer, token string) (io.WriteCloser, error) {
	switch token {
	case EncodingBrotli:
		return brotli.NewWriterLevel(buf, e.Level), nil
	case EncodingGzip:
		w, err := gzip.NewWriterLevel(buf, e.Level)
		if err != nil {
			return nil, fmt.Errorf("gzip writer: %w", err)
		}
		return w, nil
	case EncodingDeflate:
		w, err := flate.NewWriter(buf, e.Level)
		if err != nil {
			return nil, fmt.Errorf("deflate writer: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", token)
	}
}
