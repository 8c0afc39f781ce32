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
	"github.com/mchen-dev/powercast/talent"
	"github.com/mchen-dev/powercast/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Admin creates a data point
// 2. User logs in via verified address
// 3. User refreshes voting power
// 4. User votes
// 5. User partially redeems
// 6. Admin advances the data point to to_launch
// 7. my_votes tab shows the snapshotted item
// 8. History records every move
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	identitySrv := fakeIdentityServer(t, "0xabc", 42)
	defer identitySrv.Close()

	// 25 * sqrt(16) = 100 voting power
	scoreSrv := fakeScoreServer(t, 25, 16)
	defer scoreSrv.Close()

	cfg := testutil.GetTestConfig()
	store := ledger.NewStore(db)
	authHandler := NewAuthHandler(store, cfg, farcaster.NewClient(identitySrv.URL))
	userHandler := NewUserHandler(store, cfg, talent.NewClient(scoreSrv.URL, "test-key"))
	votingHandler := NewVotingHandler(store, cfg)
	catalogHandler := NewCatalogHandler(store, cfg)
	dataPointHandler := NewDataPointHandler(store, cfg)
	adminKey := auth.GenerateAdminKey(cfg.AdminKeySalt)

	// Step 1: Admin creates a data point
	req := testutil.MakeRequest("POST", "/datapoints", models.CreateDataPointRequest{
		Name:       "Integration Token",
		IssuerName: "Integration Labs",
		Pts:        1000,
	}, map[string]string{"X-Admin-Key": adminKey})
	w := httptest.NewRecorder()
	dataPointHandler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create data point failed: %d - %s", w.Code, w.Body.String())
	}
	var createResp models.CreateDataPointResponse
	testutil.AssertJSON(t, w, &createResp)
	dpID := createResp.DataPointID
	t.Logf("Step 1 - Created data point: %s", dpID)

	// Step 2: User logs in
	req = testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Address: "0xabc"}, nil)
	w = httptest.NewRecorder()
	authHandler.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Login failed: %d - %s", w.Code, w.Body.String())
	}
	var loginResp models.LoginResponse
	testutil.AssertJSON(t, w, &loginResp)
	session := map[string]string{"Authorization": "Bearer " + loginResp.SessionToken}
	t.Logf("Step 2 - Logged in as fid %d", loginResp.User.FID)

	// Step 3: Refresh voting power
	req = testutil.MakeRequest("GET", "/users/me", nil, session)
	w = httptest.NewRecorder()
	userHandler.Me(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Refresh failed: %d - %s", w.Code, w.Body.String())
	}
	var meResp models.VotingPowerResponse
	testutil.AssertJSON(t, w, &meResp)
	if meResp.User.TotalVotingPower != 100 {
		t.Fatalf("Step 3 - Expected voting power 100, got %d", meResp.User.TotalVotingPower)
	}
	t.Logf("Step 3 - Voting power: %d", meResp.User.TotalVotingPower)

	// Step 4: Vote 60
	req = testutil.MakeRequest("POST", fmt.Sprintf("/datapoints/%s/votes", dpID),
		models.VoteRequest{Votes: 60}, session)
	req.SetPathValue("id", dpID)
	w = httptest.NewRecorder()
	votingHandler.SubmitVote(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Vote failed: %d - %s", w.Code, w.Body.String())
	}
	var voteResult models.VoteResult
	testutil.AssertJSON(t, w, &voteResult)
	if voteResult.User.AvailableVotes != 40 || voteResult.User.LockedVotes != 60 {
		t.Fatalf("Step 4 - Expected 40/60 split, got %d/%d",
			voteResult.User.AvailableVotes, voteResult.User.LockedVotes)
	}
	t.Logf("Step 4 - Voted 60 on %s", dpID)

	// Step 5: Redeem down to 35
	req = testutil.MakeRequest("POST", fmt.Sprintf("/datapoints/%s/redeem", dpID),
		models.VoteRequest{Votes: 35}, session)
	req.SetPathValue("id", dpID)
	w = httptest.NewRecorder()
	votingHandler.SubmitRedeem(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Redeem failed: %d - %s", w.Code, w.Body.String())
	}
	testutil.AssertJSON(t, w, &voteResult)
	if voteResult.User.AvailableVotes != 65 || voteResult.User.LockedVotes != 35 {
		t.Fatalf("Step 5 - Expected 65/35 split, got %d/%d",
			voteResult.User.AvailableVotes, voteResult.User.LockedVotes)
	}
	t.Log("Step 5 - Redeemed down to 35")

	// Step 6: Admin advances to to_launch
	req = testutil.MakeRequest("POST", fmt.Sprintf("/datapoints/%s/advance", dpID), nil,
		map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", dpID)
	w = httptest.NewRecorder()
	dataPointHandler.Advance(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Advance failed: %d - %s", w.Code, w.Body.String())
	}
	var advanceResp models.AdvanceStatusResponse
	testutil.AssertJSON(t, w, &advanceResp)
	if advanceResp.Status != models.StatusToLaunch || advanceResp.Snapshots != 1 {
		t.Fatalf("Step 6 - Expected to_launch with 1 snapshot, got %s with %d",
			advanceResp.Status, advanceResp.Snapshots)
	}
	t.Log("Step 6 - Advanced to to_launch")

	// Step 7: my_votes tab shows the snapshotted item
	req = testutil.MakeRequest("GET", "/datapoints?tab=my_votes&status=to_launch", nil, session)
	w = httptest.NewRecorder()
	catalogHandler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Catalog failed: %d - %s", w.Code, w.Body.String())
	}
	var views []models.DataPointView
	testutil.AssertJSON(t, w, &views)
	if len(views) != 1 || views[0].ID != dpID || !views[0].SnapshotTaken {
		t.Fatalf("Step 7 - Expected snapshotted item in my_votes, got %+v", views)
	}
	t.Log("Step 7 - my_votes shows the snapshotted item")

	// Step 8: History records vote, redeem, and snapshot
	req = testutil.MakeRequest("GET", "/users/me/history", nil, session)
	w = httptest.NewRecorder()
	userHandler.History(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 8 - History failed: %d - %s", w.Code, w.Body.String())
	}
	var events []models.HistoryEvent
	testutil.AssertJSON(t, w, &events)
	if len(events) != 3 {
		t.Fatalf("Step 8 - Expected 3 history events, got %d", len(events))
	}

	byType := map[string]int64{}
	for _, e := range events {
		byType[e.ChangeType] = e.Delta
	}
	if byType[models.ChangeVote] != 60 {
		t.Errorf("Step 8 - Expected vote delta 60, got %d", byType[models.ChangeVote])
	}
	if byType[models.ChangeRedeem] != -25 {
		t.Errorf("Step 8 - Expected redeem delta -25, got %d", byType[models.ChangeRedeem])
	}
	if delta, ok := byType[models.ChangeSnapshotToLaunch]; !ok || delta != 0 {
		t.Errorf("Step 8 - Expected zero-delta snapshot event, got %d (present=%v)", delta, ok)
	}
	t.Log("Step 8 - History complete")
}
