package id

import "testing"

func TestParseAssetSlug(t *testing.T) {
	slug, err := ParseAssetSlug("acala-LOCAL-LDOT")
	if err != nil {
		t.Fatalf("ParseAssetSlug failed: %v", err)
	}
	if slug.Chain != "acala" || slug.Kind != AssetKindLocal || slug.Symbol != "LDOT" {
		t.Fatalf("unexpected slug parts: %+v", slug)
	}
	if slug.String() != "acala-LOCAL-LDOT" {
		t.Fatalf("String drifted: %s", slug.String())
	}
}

func TestParseAssetSlugRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "DOT", "acala-WRAPPED-DOT", "Acala-NATIVE-DOT", "acala-NATIVE-"} {
		if _, err := ParseAssetSlug(bad); err == nil {
			t.Fatalf("ParseAssetSlug(%q) should fail", bad)
		}
	}
}

func TestValidatePoolSlug(t *testing.T) {
	for _, good := range []string{"DOT___acala_liquid_staking", "vDOT___bifrost_liquid_staking", "qDOT___interlay_lending"} {
		if _, err := ValidatePoolSlug(good); err != nil {
			t.Fatalf("ValidatePoolSlug(%q) failed: %v", good, err)
		}
	}
	for _, bad := range []string{"", "DOT__pool", "DOT___Pool Name", "___pool"} {
		if _, err := ValidatePoolSlug(bad); err == nil {
			t.Fatalf("ValidatePoolSlug(%q) should fail", bad)
		}
	}
}

func TestValidateChainSlugLowercases(t *testing.T) {
	got, err := ValidateChainSlug(" Polkadot ")
	if err != nil {
		t.Fatalf("ValidateChainSlug failed: %v", err)
	}
	if got != "polkadot" {
		t.Fatalf("unexpected chain slug: %s", got)
	}
	if _, err := ValidateChainSlug("asset hub"); err == nil {
		t.Fatal("spaces should be rejected")
	}
}

func TestSS58RoundTrip(t *testing.T) {
	var account [32]byte
	for i := range account {
		account[i] = byte(i * 7)
	}
	// 2032 (Interlay) exercises the two-byte prefix form.
	for _, network := range []uint16{0, 10, 42, 64, 2032, maxSS58Network} {
		addr, err := EncodeSS58(account, network)
		if err != nil {
			t.Fatalf("EncodeSS58(%d) failed: %v", network, err)
		}
		decoded, err := DecodeSS58(addr)
		if err != nil {
			t.Fatalf("DecodeSS58(%s) failed: %v", addr, err)
		}
		if decoded != account {
			t.Fatalf("round trip drifted for network %d", network)
		}
	}
}

func TestSS58TwoBytePrefixShape(t *testing.T) {
	addr, err := EncodeSS58([32]byte{1, 2, 3}, 2032)
	if err != nil {
		t.Fatalf("EncodeSS58 failed: %v", err)
	}
	raw, err := base58Decode(addr)
	if err != nil {
		t.Fatalf("base58Decode failed: %v", err)
	}
	// Two prefix bytes + 32 account bytes + 2 checksum bytes.
	if len(raw) != 36 {
		t.Fatalf("raw length = %d, want 36", len(raw))
	}
	if raw[0] < 64 || raw[0] >= 128 {
		t.Fatalf("first prefix byte %#x outside the two-byte range", raw[0])
	}

	single, err := EncodeSS58([32]byte{1, 2, 3}, 0)
	if err != nil {
		t.Fatalf("EncodeSS58 failed: %v", err)
	}
	if single == addr {
		t.Fatal("network must change the encoding")
	}
}

func TestEncodeSS58RejectsOversizedNetwork(t *testing.T) {
	if _, err := EncodeSS58([32]byte{}, maxSS58Network+1); err == nil {
		t.Fatal("networks above 14 bits should fail")
	}
}

func TestDecodeSS58RejectsCorruption(t *testing.T) {
	addr, err := EncodeSS58([32]byte{1, 2, 3}, 0)
	if err != nil {
		t.Fatalf("EncodeSS58 failed: %v", err)
	}
	// Flip one character; either the checksum or the length check must trip.
	corrupted := []byte(addr)
	if corrupted[4] == '2' {
		corrupted[4] = '3'
	} else {
		corrupted[4] = '2'
	}
	if _, err := DecodeSS58(string(corrupted)); err == nil {
		t.Fatal("corrupted address should fail")
	}
	if _, err := DecodeSS58("not-base58!"); err == nil {
		t.Fatal("invalid characters should fail")
	}
	if _, err := DecodeSS58(""); err == nil {
		t.Fatal("empty address should fail")
	}
}
