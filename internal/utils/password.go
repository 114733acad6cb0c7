package utils

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when the configured BCRYPT_COST is zero or
// negative. 10 keeps login latency acceptable while staying above the
// bcrypt minimum.
const DefaultBcryptCost = 10

// HashPassword hashes a user's plain password for storage in
// usuario.contrasena_hash. Out-of-range costs are clamped into the range
// bcrypt accepts, so a misconfigured BCRYPT_COST degrades to a sane cost
// instead of failing every user create.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored hash against a login attempt. The
// comparison is constant-time inside bcrypt; the boolean hides the reason so
// login responses cannot distinguish a bad hash from a bad password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
