package utils

import "testing"

func TestHashSecretRoundTrip(t *testing.T) {
	hash, err := HashSecret("a1b2c3d4")
	if err != nil {
		t.Fatalf("hash secret: %v", err)
	}
	if hash == "a1b2c3d4" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckSecretHash("a1b2c3d4", hash) {
		t.Error("correct secret rejected")
	}
	if CheckSecretHash("wrong", hash) {
		t.Error("wrong secret accepted")
	}
}
