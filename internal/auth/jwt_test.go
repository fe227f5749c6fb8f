package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Muhidiny/osen-whmcs-mpesa/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{AccessSecret: "secret", AccessExpiry: time.Minute, Issuer: "billing-mpesa"}
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, "ops", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	claims, err := ParseAccessToken(cfg, tok)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.Subject != "ops" || claims.Role != "ADMIN" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRejects(t *testing.T) {
	cfg := testJWTConfig()
	tok, _ := GenerateAccessToken(cfg, "ops", "ADMIN")

	other := *cfg
	other.AccessSecret = "other"
	if _, err := ParseAccessToken(&other, tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret error = %v", err)
	}

	other = *cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(&other, tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong issuer error = %v", err)
	}

	expired := *cfg
	expired.AccessExpiry = -time.Minute
	old, _ := GenerateAccessToken(&expired, "ops", "ADMIN")
	if _, err := ParseAccessToken(cfg, old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v", err)
	}
}
