package auth

import "testing"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken(42)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	id, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}
}

func TestResetTokenNotValidAsAccessToken(t *testing.T) {
	token, err := NewResetToken(42)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := ParseAccessToken(token); err == nil {
		t.Fatalf("reset token accepted as access token")
	}
	if id, err := ParseResetToken(token); err != nil || id != 42 {
		t.Fatalf("reset token rejected by its own parser: id=%d err=%v", id, err)
	}
}

func TestExtractBearer(t *testing.T) {
	if _, err := ExtractBearer(""); err == nil {
		t.Fatalf("empty header accepted")
	}
	if _, err := ExtractBearer("Token abc"); err == nil {
		t.Fatalf("wrong scheme accepted")
	}
	got, err := ExtractBearer("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Fatalf("token = %q", got)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := ParseAccessToken("not-a-jwt"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
