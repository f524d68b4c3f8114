package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !IsHashedDigest(digest) {
		t.Errorf("digest %q should be recognized as hashed", digest)
	}

	ok, err := VerifyPassword("correct horse battery staple", digest)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = VerifyPassword("wrong password", digest)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if first == second {
		t.Error("two digests of the same password should differ by salt")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	cases := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"empty hash", ".deadbeef"},
		{"empty salt", "deadbeef."},
		{"non-hex hash", "zzzz.deadbeef"},
		{"non-hex salt", "deadbeef.zzzz"},
		{"extra separator", "aa.bb.cc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := VerifyPassword("anything", tc.stored)
			if !errors.Is(err, ErrInvalidDigestFormat) {
				t.Errorf("stored %q: expected ErrInvalidDigestFormat, got %v", tc.stored, err)
			}
		})
	}
}

func TestHashPassword_DigestShape(t *testing.T) {
	digest, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	parts := strings.Split(digest, digestSeparator)
	if len(parts) != 2 {
		t.Fatalf("expected hash.salt shape, got %d parts", len(parts))
	}
	if len(parts[0]) != keyLength*2 {
		t.Errorf("hash hex length = %d, want %d", len(parts[0]), keyLength*2)
	}
	if len(parts[1]) != saltLength*2 {
		t.Errorf("salt hex length = %d, want %d", len(parts[1]), saltLength*2)
	}
}
