// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mchen-dev/powercast/auth"
	"github.com/mchen-dev/powercast/farcaster"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/models"
	"github.com/mchen-dev/powercast/testutil"
)

// fakeIdentityServer answers the two-hop verification lookup for one
// known address
func fakeIdentityServer(t *testing.T, address string, fid int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/user-by-verification":
			if r.URL.Query().Get("address") == address {
				fmt.Fprintf(w, `{"result":{"user":{"fid":%d}}}`, fid)
				return
			}
			fmt.Fprint(w, `{"result":{}}`)
		case "/v2/user":
			fmt.Fprintf(w, `{"result":{"user":{"fid":%s,"username":"alice","displayName":"Alice","pfp":{"url":"https://example.com/a.png"}}}}`,
				r.URL.Query().Get("fid"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	srv := fakeIdentityServer(t, "0xabc", 42)
	defer srv.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(ledger.NewStore(db), cfg, farcaster.NewClient(srv.URL))

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "0xabc"}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.User.FID != 42 {
		t.Errorf("Expected fid 42, got %d", resp.User.FID)
	}
	if resp.User.Username != "alice" {
		t.Errorf("Expected username alice, got %q", resp.User.Username)
	}

	fid, err := auth.ParseSessionToken(resp.SessionToken, cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Minted token does not parse: %v", err)
	}
	if fid != 42 {
		t.Errorf("Token carries fid %d, expected 42", fid)
	}
}

func TestLoginPreservesBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	srv := fakeIdentityServer(t, "0xabc", 42)
	defer srv.Close()

	cfg := testutil.GetTestConfig()
	testutil.CreateTestUser(t, db, 42, 100, 60, 40)

	handler := NewAuthHandler(ledger.NewStore(db), cfg, farcaster.NewClient(srv.URL))

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "0xabc"}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.User.AvailableVotes != 60 || resp.User.LockedVotes != 40 {
		t.Errorf("Login moved budget: available=%d locked=%d",
			resp.User.AvailableVotes, resp.User.LockedVotes)
	}
}

func TestLoginUnknownAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	srv := fakeIdentityServer(t, "0xabc", 42)
	defer srv.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(ledger.NewStore(db), cfg, farcaster.NewClient(srv.URL))

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "0xunverified"}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestLoginMissingAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	srv := fakeIdentityServer(t, "0xabc", 42)
	defer srv.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(ledger.NewStore(db), cfg, farcaster.NewClient(srv.URL))

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "   "}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestLoginIdentityProviderDown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(ledger.NewStore(db), cfg, farcaster.NewClient(srv.URL))

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "0xabc"}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}
