package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("deep-sleep-9")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "deep-sleep-9" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword(hash, "deep-sleep-9") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "deep-sleep-8") {
		t.Error("wrong password should not verify")
	}
	if CheckPassword(hash, "") {
		t.Error("empty password should not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
