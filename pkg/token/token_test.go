package token

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/silicontrust/element-command/pkg/connector/simulated"
	"github.com/silicontrust/element-command/pkg/element"
)

func newTestSlot(t *testing.T) *Slot {
	t.Helper()
	session, err := element.Open(simulated.New().Connect())
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	t.Cleanup(func() { session.Close() })
	return &Slot{Session: session, Slot: 0}
}

func TestMintAndParse(t *testing.T) {
	slot := newTestSlot(t)
	signed, err := Mint(slot, "com.example.backend", jwt.MapClaims{"device": "unit-7"})
	if err != nil {
		t.Fatalf("Mint: %s", err)
	}

	claims, err := Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if claims["aud"] != "com.example.backend" {
		t.Errorf("aud = %v", claims["aud"])
	}
	if claims["device"] != "unit-7" {
		t.Errorf("device = %v", claims["device"])
	}
	if _, ok := claims["iss"].(string); !ok {
		t.Error("iss claim missing or not a string")
	}
}

// Minted tokens must verify through the stock ES256 implementation, with no knowledge of the
// element, given the slot's exported public key.
func TestMintedTokenIsStandardES256(t *testing.T) {
	slot := newTestSlot(t)
	signed, err := Mint(slot, "aud", nil)
	if err != nil {
		t.Fatalf("Mint: %s", err)
	}
	point, err := slot.Session.PublicKey(slot.Slot)
	if err != nil {
		t.Fatalf("PublicKey: %s", err)
	}
	pub, err := PublicKey(point)
	if err != nil {
		t.Fatalf("PublicKey parse: %s", err)
	}
	parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return pub, nil },
		jwt.WithValidMethods([]string{"ES256"}))
	if err != nil {
		t.Fatalf("standard parse: %s", err)
	}
	if alg := parsed.Header["alg"]; alg != "ES256" {
		t.Errorf("alg header = %v, want ES256", alg)
	}
}

func TestParseRejectsTampering(t *testing.T) {
	slot := newTestSlot(t)
	signed, err := Mint(slot, "aud", jwt.MapClaims{"role": "reader"})
	if err != nil {
		t.Fatalf("Mint: %s", err)
	}
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts", len(parts))
	}
	// Swap in a payload claiming a different role; the signature no longer covers it.
	forged, err := Mint(slot, "aud", jwt.MapClaims{"role": "admin"})
	if err != nil {
		t.Fatalf("Mint: %s", err)
	}
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]
	if _, err := Parse(spliced); err == nil {
		t.Error("spliced token accepted")
	}
}

func TestMintRequiresOpenSession(t *testing.T) {
	slot := newTestSlot(t)
	slot.Session.Close()
	if _, err := Mint(slot, "aud", nil); err == nil {
		t.Error("Mint succeeded on a closed session")
	}
}

func TestSignRejectsForeignKeyType(t *testing.T) {
	if _, err := methodES256.Sign("header.payload", "not a slot"); err == nil {
		t.Error("Sign accepted a non-slot key")
	}
}
