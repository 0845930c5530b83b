// Package token mints JSON Web Tokens whose signatures are produced inside a secure element.
// The element's native raw R||S P-256 signatures are exactly the JWS ES256 signature format, so
// minted tokens verify with any standard JWT library given the element's public key.
package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/silicontrust/element-command/pkg/element"
)

// A Slot binds an open session to the signing slot used to mint tokens.
type Slot struct {
	Session *element.Session
	Slot    int
}

// elementES256 implements jwt.SigningMethod with the signature produced inside the element. It is
// deliberately not registered with the jwt package: parsing resolves "ES256" to the standard
// software implementation, which is the point.
type elementES256 struct{}

var methodES256 elementES256

func (elementES256) Alg() string { return "ES256" }

func (elementES256) Sign(signingString string, key interface{}) ([]byte, error) {
	slot, ok := key.(*Slot)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}
	digest := sha256.Sum256([]byte(signingString))
	sig, err := slot.Session.SignDigest(digest[:], slot.Slot)
	if err != nil {
		return nil, err
	}
	return sig.Bytes, nil
}

func (elementES256) Verify(signingString string, sig []byte, key interface{}) error {
	point, ok := key.([]byte)
	if !ok {
		return jwt.ErrInvalidKeyType
	}
	pub, err := PublicKey(point)
	if err != nil {
		return err
	}
	return jwt.SigningMethodES256.Verify(signingString, sig, pub)
}

// PublicKey parses an uncompressed P-256 point, as exported from an element slot, into a
// verifying key for minted tokens.
func PublicKey(point []byte) (*ecdsa.PublicKey, error) {
	x, y := elliptic.Unmarshal(elliptic.P256(), point)
	if x == nil {
		return nil, fmt.Errorf("malformed P-256 public key")
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

// Mint returns a signed token carrying the given claims. The issuer ("iss") claim is overwritten
// with the base64-encoded public key of the signing slot, and the audience ("aud") claim with
// audience. Verifiers recover the key from the issuer claim and must check it against their own
// trust store.
func Mint(slot *Slot, audience string, claims jwt.MapClaims) (string, error) {
	point, err := slot.Session.PublicKey(slot.Slot)
	if err != nil {
		return "", err
	}
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	claims["iss"] = base64.StdEncoding.EncodeToString(point)
	claims["aud"] = audience
	t := jwt.New(methodES256)
	t.Claims = claims
	return t.SignedString(slot)
}

// IssuerKey is a jwt.Keyfunc that extracts the issuer's public key from the token's own claims.
// It does not establish that the issuer is trusted.
func IssuerKey(t *jwt.Token) (interface{}, error) {
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("could not parse token claims")
	}
	issuer, ok := claims["iss"]
	if !ok {
		return nil, fmt.Errorf("token is missing issuer")
	}
	issuerB64, ok := issuer.(string)
	if !ok {
		return nil, fmt.Errorf("issuer claim is not a string")
	}
	point, err := base64.StdEncoding.DecodeString(issuerB64)
	if err != nil {
		return nil, fmt.Errorf("issuer is not a base64-encoded key")
	}
	return PublicKey(point)
}

// Parse verifies a minted token against the key in its issuer claim and returns its claims.
func Parse(tokenString string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(tokenString, IssuerKey, jwt.WithValidMethods([]string{methodES256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("could not parse token claims")
	}
	return claims, nil
}
