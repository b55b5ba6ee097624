package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: server.URL, Timeout: 2 * time.Second})
	return client, server
}

func TestSendOTP(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/otp/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200}`))
	})
	defer server.Close()

	if err := client.SendOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatal(err)
	}
}

func TestSendOTPFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"failure":"Email topilmadi"}`))
	})
	defer server.Close()

	err := client.SendOTP(context.Background(), "a@b.com")
	var appErr *ApplicationFailure
	if !errors.As(err, &appErr) || appErr.Reason != "Email topilmadi" {
		t.Fatalf("expected application failure, got %v", err)
	}
}

func TestVerifyOTPAccepted(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200}`))
	})
	defer server.Close()

	outcome, err := client.VerifyOTP(context.Background(), "a@b.com", "123456")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != VerifyAccepted {
		t.Fatalf("expected accepted, got %v", outcome)
	}
}

func TestVerifyOTPExpiredBodyStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":301}`))
	})
	defer server.Close()

	outcome, err := client.VerifyOTP(context.Background(), "a@b.com", "123456")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != VerifyExpired {
		t.Fatalf("expected expired, got %v", outcome)
	}
}

func TestVerifyOTPExpiredHTTPStatus(t *testing.T) {
	// some backend versions reply with a literal 301 response
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMovedPermanently)
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	outcome, err := client.VerifyOTP(context.Background(), "a@b.com", "123456")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != VerifyExpired {
		t.Fatalf("expected expired, got %v", outcome)
	}
}

func TestVerifyOTPRejected(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"failure":"Kod noto'g'ri"}`))
	})
	defer server.Close()

	outcome, err := client.VerifyOTP(context.Background(), "a@b.com", "000000")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != VerifyRejected || outcome.Reason != "Kod noto'g'ri" {
		t.Fatalf("expected rejected, got %v", outcome)
	}
}

func TestRegister(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"_id":"u1","email":"a@b.com","fullName":"Ali Ahmadov"}}`))
	})
	defer server.Close()

	user, err := client.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "Passw0rd!",
		FullName: "Ali Ahmadov",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u1" || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestRegisterNoUser(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, err := client.Register(context.Background(), RegisterRequest{Email: "a@b.com"})
	var appErr *ApplicationFailure
	if !errors.As(err, &appErr) {
		t.Fatalf("expected application failure, got %v", err)
	}
}

func TestServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	err := client.SendOTP(context.Background(), "a@b.com")
	var srvErr *ServerError
	if !errors.As(err, &srvErr) || srvErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"validationErrors":{"email":"required"}}`))
	})
	defer server.Close()

	err := client.SendOTP(context.Background(), "")
	var valErr *ValidationError
	if !errors.As(err, &valErr) || valErr.Fields["email"] != "required" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransportError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	err := client.SendOTP(context.Background(), "a@b.com")
	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestGoogleSignIn(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/google" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"_id":"u2","email":"g@b.com"}}`))
	})
	defer server.Close()

	user, err := client.GoogleSignIn(context.Background(), GoogleProfile{
		Email:    "g@b.com",
		FullName: "G User",
		GoogleID: "gid123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u2" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestProfile(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/profile/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"_id":"u1","email":"a@b.com"}}`))
	})
	defer server.Close()

	user, err := client.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestProbeGoogleAuth(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	defer server.Close()

	status, err := client.ProbeGoogleAuth(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}
