package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/depcache/cache"
)

func signedToken(t *testing.T, sub string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestWithJWTSubject_PartitionsByUser(t *testing.T) {
	identify := WithJWTSubject(DefaultIdentifier)

	alice := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	alice.Header.Set("Authorization", "Bearer "+signedToken(t, "alice"))

	bob := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	bob.Header.Set("Authorization", "Bearer "+signedToken(t, "bob"))

	idAlice := identify(alice)
	idBob := identify(bob)

	if idAlice == idBob {
		t.Errorf("identifiers should differ per subject: %q vs %q", idAlice, idBob)
	}
	if idAlice != "GET /api/me|sub=alice" {
		t.Errorf("identifier = %q, want 'GET /api/me|sub=alice'", idAlice)
	}
}

func TestWithJWTSubject_AnonymousSharesPartition(t *testing.T) {
	identify := WithJWTSubject(DefaultIdentifier)

	plain := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	garbled := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	garbled.Header.Set("Authorization", "Bearer not-a-jwt")

	if identify(plain) != "GET /api/me" {
		t.Errorf("anonymous identifier = %q, want 'GET /api/me'", identify(plain))
	}
	if identify(garbled) != "GET /api/me" {
		t.Errorf("unparseable token should fall back to the shared partition, got %q", identify(garbled))
	}
}

func TestWithJWTSubject_MiddlewareKeepsUsersSeparate(t *testing.T) {
	var executions atomic.Int32
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		executions.Add(1)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "response for %s", r.Header.Get("Authorization"))
	})

	m := newTestMiddleware(t, Options{
		Store:      cache.NewMemoryStore(),
		Identifier: WithJWTSubject(DefaultIdentifier),
	})
	handler := m.Wrap(upstream)

	aliceToken := "Bearer " + signedToken(t, "alice")
	bobToken := "Bearer " + signedToken(t, "bob")

	send := func(token string) string {
		r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		r.Header.Set("Authorization", token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, r)
		return rr.Body.String()
	}

	aliceFirst := send(aliceToken)
	bobFirst := send(bobToken)

	if executions.Load() != 2 {
		t.Fatalf("upstream executed %d times, want 2 (one per subject)", executions.Load())
	}
	if aliceFirst == bobFirst {
		t.Error("responses for different subjects should not be shared")
	}

	// Repeats hit each subject's own cached response.
	if send(aliceToken) != aliceFirst {
		t.Error("alice's repeat should serve alice's cached response")
	}
	if send(bobToken) != bobFirst {
		t.Error("bob's repeat should serve bob's cached response")
	}
	if executions.Load() != 2 {
		t.Errorf("upstream executed %d times after repeats, want 2", executions.Load())
	}
}
