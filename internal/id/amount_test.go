package id

import "testing"

func TestNormalizeAmountBaseUnits(t *testing.T) {
	base, dec, err := NormalizeAmount("10000000000", "", 10)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	if base != "10000000000" || dec != "1" {
		t.Fatalf("unexpected result: base=%s dec=%s", base, dec)
	}
}

func TestNormalizeAmountDecimal(t *testing.T) {
	base, dec, err := NormalizeAmount("", "1.25", 10)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	if base != "12500000000" || dec != "1.25" {
		t.Fatalf("unexpected result: base=%s dec=%s", base, dec)
	}
}

func TestNormalizeAmountValidation(t *testing.T) {
	if _, _, err := NormalizeAmount("10", "1", 10); err == nil {
		t.Fatal("expected mutual exclusivity error")
	}
	if _, _, err := NormalizeAmount("", "1.12345678901", 10); err == nil {
		t.Fatal("expected precision error")
	}
	if got := FormatDecimalCompat("0", 10); got != "0" {
		t.Fatalf("unexpected zero format: %s", got)
	}
}

func TestNormalizeAmountRoundTrip(t *testing.T) {
	base, dec, err := NormalizeAmount("12500000000", "", 10)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	base2, dec2, err := NormalizeAmount("", dec, 10)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if base2 != base || dec2 != dec {
		t.Fatalf("round trip drifted: %s/%s vs %s/%s", base, dec, base2, dec2)
	}
}

func TestParseBaseUnitsRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "abc", "1.5", "-3"} {
		if _, err := ParseBaseUnits(bad); err == nil {
			t.Fatalf("ParseBaseUnits(%q) should fail", bad)
		}
	}
}
