package config

import "testing"

func TestSupportedAlgorithm(t *testing.T) {
	if !SupportedAlgorithm("HS256") {
		t.Fatal("HS256 rejected")
	}
	for _, alg := range []string{"RS256", "ES256", "none", "hs256", ""} {
		if SupportedAlgorithm(alg) {
			t.Fatalf("%q accepted, only HS256 is implemented", alg)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "inventario_test")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ALGORITHM", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := Load()
	if cfg.JWTAlgorithm != "HS256" {
		t.Fatalf("JWTAlgorithm = %q, want HS256", cfg.JWTAlgorithm)
	}
	if cfg.JWTSecret != insecureDefaultSecret {
		t.Fatalf("JWTSecret = %q, want the documented dev default", cfg.JWTSecret)
	}
	if cfg.AccessTTLMin != 30 || cfg.BcryptCost != 10 {
		t.Fatalf("TTL/cost defaults = %d/%d, want 30/10", cfg.AccessTTLMin, cfg.BcryptCost)
	}
}
