package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Error("Hash() returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Error("Hash() returned the plaintext password")
	}

	if !hasher.Verify("correct horse battery staple", hash) {
		t.Error("Verify() = false for correct password, want true")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() = true for wrong password, want false")
	}
}

func TestPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password are identical, want salted distinct hashes")
	}
}
