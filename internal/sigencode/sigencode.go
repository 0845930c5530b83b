// Package sigencode converts ECDSA signatures between the element's fixed-width R||S encoding and
// ASN.1 DER. Parsing is strict: each decoder accepts exactly one encoding and never falls back to
// guessing the other.
package sigencode

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrMalformedRaw = errors.New("malformed raw signature")
	ErrMalformedDER = errors.New("malformed DER signature")
)

type derSignature struct {
	R, S *big.Int
}

// ParseRaw splits a fixed-width R||S signature into its scalar components. The signature must be
// exactly twice coordSize bytes.
func ParseRaw(sig []byte, coordSize int) (r, s *big.Int, err error) {
	if len(sig) != 2*coordSize {
		return nil, nil, fmt.Errorf("%w: length %d, expected %d", ErrMalformedRaw, len(sig), 2*coordSize)
	}
	r = new(big.Int).SetBytes(sig[:coordSize])
	s = new(big.Int).SetBytes(sig[coordSize:])
	return r, s, nil
}

// ParseDER decodes an ASN.1 SEQUENCE of two INTEGERs. Trailing bytes, negative scalars, and any
// other deviation from DER are rejected.
func ParseDER(sig []byte) (r, s *big.Int, err error) {
	var decoded derSignature
	rest, err := asn1.Unmarshal(sig, &decoded)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrMalformedDER, err)
	}
	if len(rest) != 0 {
		return nil, nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedDER, len(rest))
	}
	if decoded.R.Sign() <= 0 || decoded.S.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: non-positive scalar", ErrMalformedDER)
	}
	return decoded.R, decoded.S, nil
}

// EncodeRaw serializes r and s as big-endian values padded to coordSize bytes each.
func EncodeRaw(r, s *big.Int, coordSize int) ([]byte, error) {
	if r.BitLen() > 8*coordSize || s.BitLen() > 8*coordSize {
		return nil, fmt.Errorf("%w: scalar wider than %d bytes", ErrMalformedRaw, coordSize)
	}
	out := make([]byte, 2*coordSize)
	r.FillBytes(out[:coordSize])
	s.FillBytes(out[coordSize:])
	return out, nil
}

// EncodeDER serializes r and s as an ASN.1 SEQUENCE of two INTEGERs.
func EncodeDER(r, s *big.Int) ([]byte, error) {
	return asn1.Marshal(derSignature{R: r, S: s})
}

// RawToDER re-encodes a fixed-width signature as DER.
func RawToDER(sig []byte, coordSize int) ([]byte, error) {
	r, s, err := ParseRaw(sig, coordSize)
	if err != nil {
		return nil, err
	}
	return EncodeDER(r, s)
}

// DERToRaw re-encodes a DER signature as fixed-width R||S.
func DERToRaw(sig []byte, coordSize int) ([]byte, error) {
	r, s, err := ParseDER(sig)
	if err != nil {
		return nil, err
	}
	return EncodeRaw(r, s, coordSize)
}
