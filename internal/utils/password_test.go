package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("clave123", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "clave123" {
		t.Fatal("hash equals the plain password")
	}
	if !VerifyPassword(hash, "clave123") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "clave124") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordCostClamping(t *testing.T) {
	cases := []struct {
		name string
		cost int
		want int
	}{
		{"zero uses default", 0, DefaultBcryptCost},
		{"negative uses default", -3, DefaultBcryptCost},
		{"below minimum clamps up", 2, bcrypt.MinCost},
		{"in range kept", 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := HashPassword("clave123", tc.cost)
			if err != nil {
				t.Fatalf("HashPassword(%d): %v", tc.cost, err)
			}
			got, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("Cost: %v", err)
			}
			if got != tc.want {
				t.Fatalf("effective cost = %d, want %d", got, tc.want)
			}
		})
	}
}
