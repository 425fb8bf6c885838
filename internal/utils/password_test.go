package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("CheckPasswordHash with correct password = false")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("CheckPasswordHash with wrong password = true")
	}
}

func TestCheckPasswordHashInvalidHash(t *testing.T) {
	if CheckPasswordHash("whatever", "not-a-bcrypt-hash") {
		t.Error("CheckPasswordHash with junk hash = true")
	}
}
