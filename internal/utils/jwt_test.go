package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "HOST", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    claims, ok := parsed.Claims.(jwt.MapClaims)
    if !ok || !parsed.Valid {
        t.Fatal("token did not validate")
    }
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Errorf("sub = %v, want 42", claims["sub"])
    }
    if role, _ := claims["role"].(string); role != "HOST" {
        t.Errorf("role = %v, want HOST", claims["role"])
    }
    if exp, _ := claims["exp"].(float64); time.Unix(int64(exp), 0).Before(time.Now()) {
        t.Error("token already expired")
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right", 1, "RENTER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong"), nil
    })
    if err == nil {
        t.Fatal("token validated with the wrong secret")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    rt, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw length = %d, want 96", len(rt.Raw))
    }
    h1 := HashRefreshRaw(rt.Raw)
    h2 := HashRefreshRaw(rt.Raw)
    if h1 != h2 {
        t.Error("hash is not deterministic")
    }
    if len(h1) != 64 {
        t.Errorf("hash length = %d, want 64", len(h1))
    }
    if h1 == HashRefreshRaw(rt.Raw+"x") {
        t.Error("different inputs produced the same hash")
    }
}
