package element

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/silicontrust/element-command/internal/sigencode"
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// NativeCurve is the curve of the key pairs held inside the element.
const NativeCurve = protocol.CurveP256

func checkSlot(slot int) error {
	// The upper bound is model-dependent and enforced by the element itself.
	if slot < 0 {
		return protocol.InvalidArgument("key slot %d is negative", slot)
	}
	return nil
}

func checkDigest(digest []byte, curve protocol.Curve) error {
	if len(digest) != curve.DigestSize() {
		return protocol.InvalidArgument("digest is %d bytes, %s requires exactly %d",
			len(digest), curve, curve.DigestSize())
	}
	return nil
}

// checkForeignKey rejects a key that is not a well-formed point on its declared curve, so that a
// bad key is a caller fault rather than a connector fault.
func checkForeignKey(key protocol.ForeignKey) error {
	if len(key.Bytes) != key.UncompressedPointSize() || key.Bytes[0] != 0x04 {
		return protocol.InvalidArgument(
			"foreign public key must be an uncompressed point (%d bytes, leading 0x04)",
			key.UncompressedPointSize())
	}
	switch key.Curve {
	case protocol.CurveP256:
		if _, err := ecdh.P256().NewPublicKey(key.Bytes); err != nil {
			return protocol.InvalidArgument("foreign public key is not a point on %s", key.Curve)
		}
	case protocol.CurveSecp256k1:
		if _, err := secp256k1.ParsePubKey(key.Bytes); err != nil {
			return protocol.InvalidArgument("foreign public key is not a point on %s", key.Curve)
		}
	default:
		return protocol.InvalidArgument("unknown curve %d", int(key.Curve))
	}
	return nil
}

// normalize re-encodes sig into the element's native fixed-width form, parsing strictly
// according to the signature's declared encoding.
func normalize(sig protocol.Signature) ([]byte, error) {
	coordSize := sig.Curve.CoordinateSize()
	switch sig.Encoding {
	case protocol.EncodingRaw:
		if _, _, err := sigencode.ParseRaw(sig.Bytes, coordSize); err != nil {
			return nil, protocol.InvalidArgument("%s", err)
		}
		return sig.Bytes, nil
	case protocol.EncodingDER:
		raw, err := sigencode.DERToRaw(sig.Bytes, coordSize)
		if err != nil {
			return nil, protocol.InvalidArgument("%s", err)
		}
		return raw, nil
	}
	return nil, protocol.InvalidArgument("unknown signature encoding %d", sig.Encoding)
}

// SignDigest signs a caller-computed digest with the element's private key in the given slot.
// The digest must be exactly the curve's hash width; mismatched widths are rejected without
// touching hardware. The returned signature uses the element's native encoding (raw R||S).
func (s *Session) SignDigest(digest []byte, slot int) (protocol.Signature, error) {
	if err := checkSlot(slot); err != nil {
		return protocol.Signature{}, err
	}
	if err := checkDigest(digest, NativeCurve); err != nil {
		return protocol.Signature{}, err
	}
	var sig []byte
	err := s.bus("sign", func(c connector.Connector) error {
		var busErr error
		sig, busErr = c.Sign(digest, slot)
		return busErr
	})
	if err != nil {
		return protocol.Signature{}, err
	}
	return protocol.Signature{Bytes: sig, Curve: NativeCurve, Encoding: protocol.EncodingRaw}, nil
}

// VerifyDigest checks sig over digest against the element's own public key for the slot. The
// outcome is three-valued: a cryptographic mismatch returns (NotVerified, nil), malformed input
// returns ErrInvalidArgument, and a hardware fault returns a DeviceError.
func (s *Session) VerifyDigest(digest []byte, slot int, sig protocol.Signature) (protocol.VerifyResult, error) {
	if err := checkSlot(slot); err != nil {
		return protocol.NotVerified, err
	}
	if err := checkDigest(digest, NativeCurve); err != nil {
		return protocol.NotVerified, err
	}
	raw, err := normalize(sig)
	if err != nil {
		return protocol.NotVerified, err
	}
	var ok bool
	err = s.bus("verify", func(c connector.Connector) error {
		var busErr error
		ok, busErr = c.Verify(digest, slot, raw)
		return busErr
	})
	if err != nil {
		return protocol.NotVerified, err
	}
	if !ok {
		return protocol.NotVerified, nil
	}
	return protocol.Verified, nil
}

// VerifyDigestForeign checks sig over digest against a caller-supplied public key instead of a
// key resident in the element. The key must be an uncompressed curve point (0x04 tag byte) on
// its declared curve, and the signature is parsed strictly according to its declared encoding —
// a decode failure is ErrInvalidArgument, never a silent retry with the other encoding.
func (s *Session) VerifyDigestForeign(digest []byte, key protocol.ForeignKey, sig protocol.Signature) (protocol.VerifyResult, error) {
	if err := checkDigest(digest, key.Curve); err != nil {
		return protocol.NotVerified, err
	}
	if err := checkForeignKey(key); err != nil {
		return protocol.NotVerified, err
	}
	if sig.Curve != key.Curve {
		return protocol.NotVerified, protocol.InvalidArgument(
			"signature curve %s does not match key curve %s", sig.Curve, key.Curve)
	}
	if _, err := normalize(sig); err != nil {
		return protocol.NotVerified, err
	}
	var ok bool
	err := s.bus("verify foreign", func(c connector.Connector) error {
		var busErr error
		ok, busErr = c.VerifyForeign(digest, key.Bytes, key.Curve, sig.Bytes, sig.Encoding)
		return busErr
	})
	if err != nil {
		return protocol.NotVerified, err
	}
	if !ok {
		return protocol.NotVerified, nil
	}
	return protocol.Verified, nil
}

// PublicKey exports the element's public key for the slot as an uncompressed curve point.
func (s *Session) PublicKey(slot int) ([]byte, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	var point []byte
	err := s.bus("export public key", func(c connector.Connector) error {
		var busErr error
		point, busErr = c.ExportPublicKey(slot)
		return busErr
	})
	if err != nil {
		return nil, err
	}
	return point, nil
}

// SavePublicKey exports the element's public key for the slot to a PEM file, suitable for
// generating certificate signing requests.
func (s *Session) SavePublicKey(slot int, path string) error {
	point, err := s.PublicKey(slot)
	if err != nil {
		return err
	}
	pemBytes, err := pointToPEM(point)
	if err != nil {
		return err
	}
	return writeFileExact(path, pemBytes, 0o644)
}

func pointToPEM(point []byte) ([]byte, error) {
	coordSize := NativeCurve.CoordinateSize()
	if len(point) != 1+2*coordSize || point[0] != 0x04 {
		return nil, protocol.NewDeviceError("export public key", errors.New("malformed curve point"))
	}
	pub := ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(point[1 : 1+coordSize]),
		Y:     new(big.Int).SetBytes(point[1+coordSize:]),
	}
	der, err := x509.MarshalPKIXPublicKey(&pub)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
