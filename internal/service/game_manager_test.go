package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
)

func TestGameManager_Sessions(t *testing.T) {
	gm := NewGameManager()

	s, err := gm.CreateSessionWithID("fixed")
	if err != nil {
		t.Fatalf("CreateSessionWithID: %v", err)
	}
	if _, err := gm.CreateSessionWithID("fixed"); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate create error = %v, want ErrGameExists", err)
	}
	got, err := gm.Session("fixed")
	if err != nil || got != s {
		t.Errorf("Session(fixed) = %p, %v, want %p", got, err, s)
	}

	gm.RemoveSession("fixed")
	if _, err := gm.Session("fixed"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Session after remove error = %v, want ErrGameNotFound", err)
	}

	fresh, err := gm.CreateSession()
	if err != nil || fresh.ID() == "" {
		t.Errorf("CreateSession() = %v, %v", fresh, err)
	}
}

func TestGameManager_MatchOncePairsPlayers(t *testing.T) {
	gm := NewGameManager()

	alice, err := gm.JoinMatchmaking("alice")
	if err != nil {
		t.Fatalf("JoinMatchmaking(alice): %v", err)
	}
	if _, err := gm.JoinMatchmaking("alice"); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("second JoinMatchmaking error = %v, want ErrAlreadyQueued", err)
	}
	if gm.matchOnce() {
		t.Fatal("matchOnce() paired a lone player")
	}
	bob, _ := gm.JoinMatchmaking("bob")

	if !gm.matchOnce() {
		t.Fatal("matchOnce() = false with two players queued")
	}
	a, b := <-alice, <-bob
	if a.GameID == "" || a.GameID != b.GameID {
		t.Fatalf("match events %+v and %+v name different games", a, b)
	}
	if a.Color != model.White || b.Color != model.Black {
		t.Errorf("colors = %s, %s, want white, black", a.Color, b.Color)
	}
	s, err := gm.Session(a.GameID)
	if err != nil {
		t.Fatalf("Session(%s): %v", a.GameID, err)
	}
	if snap := s.Snapshot(); snap.Players.White.ID != "alice" || snap.Players.Black.ID != "bob" {
		t.Errorf("players = %+v", snap.Players)
	}
}

func TestGameManager_LeaveMatchmaking(t *testing.T) {
	gm := NewGameManager()
	_, _ = gm.JoinMatchmaking("alice")

	if _, matched := gm.LeaveMatchmaking("alice"); matched {
		t.Error("LeaveMatchmaking reported a match that never happened")
	}
	_, _ = gm.JoinMatchmaking("bob")
	if gm.matchOnce() {
		t.Error("matchOnce() paired a player who left")
	}
}

func TestGameManager_LeaveAfterMatchReturnsIt(t *testing.T) {
	gm := NewGameManager()
	_, _ = gm.JoinMatchmaking("alice")
	_, _ = gm.JoinMatchmaking("bob")
	gm.matchOnce()

	m, matched := gm.LeaveMatchmaking("alice")
	if !matched || m.Color != model.White {
		t.Errorf("LeaveMatchmaking = %+v, %v, want the pending white match", m, matched)
	}
}

func TestGameManager_MatchHeldUntilCollected(t *testing.T) {
	gm := NewGameManager()
	_, _ = gm.JoinMatchmaking("alice")
	bob, _ := gm.JoinMatchmaking("bob")
	gm.matchOnce()

	// alice's wait ended before she read her channel
	if _, err := gm.JoinMatchmaking("alice"); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("JoinMatchmaking with an uncollected match error = %v, want ErrAlreadyQueued", err)
	}
	a, matched := gm.LeaveMatchmaking("alice")
	if !matched {
		t.Fatal("LeaveMatchmaking lost alice's match")
	}
	b := <-bob
	gm.LeaveMatchmaking("bob")
	if a.GameID != b.GameID {
		t.Errorf("alice got game %s, bob got %s", a.GameID, b.GameID)
	}

	for _, id := range []string{"alice", "bob"} {
		if _, err := gm.JoinMatchmaking(id); err != nil {
			t.Errorf("JoinMatchmaking(%s) after collecting the match: %v", id, err)
		}
	}
}

func TestGameService_JoinMatchmakingWithRun(t *testing.T) {
	gm := NewGameManager()
	gs := NewGameService(gm, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gm.Run(ctx, 10*time.Millisecond)

	type result struct {
		m       MatchFound
		matched bool
		err     error
	}
	results := make(chan result, 2)
	for _, id := range []string{"alice", "bob"} {
		go func(id string) {
			m, ok, err := gs.JoinMatchmaking(ctx, id)
			results <- result{m, ok, err}
		}(id)
	}

	first, second := <-results, <-results
	for _, r := range []result{first, second} {
		if r.err != nil || !r.matched {
			t.Fatalf("JoinMatchmaking = %+v", r)
		}
	}
	if first.m.GameID != second.m.GameID || first.m.Color == second.m.Color {
		t.Errorf("players were not paired together: %+v, %+v", first.m, second.m)
	}
}

func TestGameService_JoinMatchmakingTimesOut(t *testing.T) {
	gm := NewGameManager()
	gs := NewGameService(gm, 20*time.Millisecond)

	_, matched, err := gs.JoinMatchmaking(context.Background(), "alice")
	if err != nil || matched {
		t.Fatalf("JoinMatchmaking = %v, %v, want unmatched timeout", matched, err)
	}
	// the player can queue again after a timeout
	if _, err := gm.JoinMatchmaking("alice"); err != nil {
		t.Errorf("re-queue after timeout: %v", err)
	}
}

func TestGameService_CreateAndPlay(t *testing.T) {
	gs := NewGameService(NewGameManager(), time.Second)

	gameID, color, err := gs.CreateGame("alice")
	if err != nil || color != model.White {
		t.Fatalf("CreateGame = %s, %s, %v", gameID, color, err)
	}
	if c, err := gs.JoinGame(gameID, "bob"); err != nil || c != model.Black {
		t.Fatalf("JoinGame = %s, %v", c, err)
	}
	if _, err := gs.JoinGame("missing", "bob"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("JoinGame(missing) error = %v, want ErrGameNotFound", err)
	}

	from := model.MustSquare("b1")
	moves, err := gs.LegalMoves(gameID, &from)
	if err != nil || len(moves) != 2 {
		t.Errorf("LegalMoves(b1) = %v, %v, want 2 knight moves", moves, err)
	}

	snap, err := gs.HandleMove(gameID, "alice", move("b1c3"))
	if err != nil {
		t.Fatalf("HandleMove: %v", err)
	}
	if snap.ToMove != model.Black {
		t.Errorf("ToMove = %s, want black", snap.ToMove)
	}
}
