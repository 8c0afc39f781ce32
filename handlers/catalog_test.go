// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/models"
	"github.com/mchen-dev/powercast/testutil"
)

func TestCatalogList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(ledger.NewStore(db), cfg)

	testutil.CreateTestUser(t, db, 1, 100, 70, 30)
	dpA := testutil.CreateTestDataPoint(t, db, "Point A", "voting")
	testutil.CreateTestDataPoint(t, db, "Point B", "voting")
	testutil.CreateTestDataPoint(t, db, "Done", "launched")
	testutil.SetTestAllocation(t, db, 1, dpA, 30)

	token := testutil.SessionFor(t, 1, cfg)
	req := testutil.MakeRequest("GET", "/datapoints?tab=vote&status=voting", nil,
		map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()

	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var views []models.DataPointView
	testutil.AssertJSON(t, w, &views)

	if len(views) != 2 {
		t.Fatalf("Expected 2 voting items, got %d", len(views))
	}
	if views[0].ID != dpA || views[0].MyVotes != 30 {
		t.Errorf("Expected held item first with my_votes 30, got %s my_votes %d", views[0].ID, views[0].MyVotes)
	}
}

func TestCatalogDefaultsToVoteVoting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(ledger.NewStore(db), cfg)

	testutil.CreateTestDataPoint(t, db, "Default Visible", "voting")
	testutil.CreateTestDataPoint(t, db, "Hidden", "launched")

	req := testutil.MakeRequest("GET", "/datapoints", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var views []models.DataPointView
	testutil.AssertJSON(t, w, &views)

	if len(views) != 1 {
		t.Fatalf("Expected 1 item with default filters, got %d", len(views))
	}
	if views[0].Status != models.StatusVoting {
		t.Errorf("Expected voting status, got %s", views[0].Status)
	}
}

func TestCatalogAnonymousVoteTab(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(ledger.NewStore(db), cfg)

	testutil.CreateTestDataPoint(t, db, "Public", "voting")

	req := testutil.MakeRequest("GET", "/datapoints?tab=vote&status=voting", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCatalogMyVotesRequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(ledger.NewStore(db), cfg)

	req := testutil.MakeRequest("GET", "/datapoints?tab=my_votes&status=voting", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestCatalogInvalidFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCatalogHandler(ledger.NewStore(db), cfg)

	tests := []struct {
		name string
		path string
	}{
		{"bad tab", "/datapoints?tab=bogus"},
		{"bad status", "/datapoints?status=archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tt.path, nil, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
