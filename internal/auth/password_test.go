// ABOUTME: Tests for bcrypt password hashing and comparison
// ABOUTME: Verifies hashes are salted and comparisons reject wrong passwords

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash does not look like bcrypt: %q", hash)
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword() accepted the wrong password")
	}
	if CheckPassword(hash, "") {
		t.Error("CheckPassword() accepted an empty password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "pw") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}
