// Package protocol defines the types and error taxonomy shared between the public element API and
// the hardware connector layer.
package protocol

import "fmt"

// Curve identifies the elliptic curve a signature or foreign public key belongs to.
type Curve int

const (
	CurveP256 Curve = iota
	CurveSecp256k1
)

func (c Curve) String() string {
	switch c {
	case CurveP256:
		return "nistp256"
	case CurveSecp256k1:
		return "secp256k1"
	}
	return fmt.Sprintf("curve(%d)", int(c))
}

// CoordinateSize returns the width in bytes of a field element on the curve.
func (c Curve) CoordinateSize() int {
	// Both supported curves use 256-bit fields.
	return 32
}

// DigestSize returns the exact digest width in bytes accepted by sign and verify operations on the
// curve.
func (c Curve) DigestSize() int {
	return 32
}

// SignatureEncoding selects how an ECDSA signature is serialized.
type SignatureEncoding int

const (
	// EncodingRaw is the fixed-width concatenation R||S of the two big-endian scalars.
	EncodingRaw SignatureEncoding = iota
	// EncodingDER is the ASN.1 SEQUENCE of two INTEGERs.
	EncodingDER
)

func (e SignatureEncoding) String() string {
	switch e {
	case EncodingRaw:
		return "raw"
	case EncodingDER:
		return "der"
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// VerifyResult is the three-valued outcome of a verification. A cryptographic mismatch is
// NotVerified, an ordinary control-flow value; faults are reported separately as errors. The
// numeric values mirror the element's wire convention (0 = not verified, 1 = verified).
type VerifyResult int

const (
	NotVerified VerifyResult = 0
	Verified    VerifyResult = 1
)

func (r VerifyResult) String() string {
	if r == Verified {
		return "verified"
	}
	return "not verified"
}

// Signature is the output of a sign operation or the input to a verify operation.
type Signature struct {
	Bytes    []byte
	Curve    Curve
	Encoding SignatureEncoding
}

// ForeignKey is a caller-supplied public key used for verification only. Bytes must hold an
// uncompressed curve point: a 0x04 tag byte followed by two field-element-width coordinates.
type ForeignKey struct {
	Bytes []byte
	Curve Curve
}

// UncompressedPointSize returns the expected length of Bytes for k's curve.
func (k ForeignKey) UncompressedPointSize() int {
	return 1 + 2*k.Curve.CoordinateSize()
}

// TapDirection reports which way the g-force that caused a tap event pointed along an axis.
type TapDirection int

const (
	TapNegative TapDirection = -1
	TapNone     TapDirection = 0
	TapPositive TapDirection = 1
)

// AxisData is one accelerometer axis sample.
type AxisData struct {
	// G is the axis reading in units of g-force.
	G float64
	// TapDirection is the direction of the force along the axis which caused a tap event, or
	// TapNone if the axis did not cause one.
	TapDirection TapDirection
}
