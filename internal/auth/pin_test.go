package auth

import "testing"

func TestValidPIN(t *testing.T) {
	valid := []string{"000000", "123456", "999999"}
	for _, pin := range valid {
		if !ValidPIN(pin) {
			t.Errorf("ValidPIN(%q) = false, want true", pin)
		}
	}

	invalid := []string{"", "12345", "1234567", "12345a", "12 456", "123456\n", "-12345"}
	for _, pin := range invalid {
		if ValidPIN(pin) {
			t.Errorf("ValidPIN(%q) = true, want false", pin)
		}
	}
}

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := HashPIN("482910")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	if hash == "482910" {
		t.Fatal("hash must not equal the plaintext PIN")
	}

	if !CheckPIN(hash, "482910") {
		t.Error("CheckPIN rejected the correct PIN")
	}
	if CheckPIN(hash, "482911") {
		t.Error("CheckPIN accepted a wrong PIN")
	}
	if CheckPIN("not-a-bcrypt-hash", "482910") {
		t.Error("CheckPIN accepted a malformed hash")
	}
}
