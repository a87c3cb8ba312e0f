package scoreintegrationtests

import (
	"encoding/json"
	"testing"
	"time"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
)

func TestAppendEntries_AssignsIncreasingSeq(t *testing.T) {
	deps := SetupTestScoreService(t)
	gen := testutils.NewTestDataGenerator(42)

	game := gen.GenerateGame(2)
	rounds := gen.GenerateRounds(game, gen.GenerateTee())

	first, err := deps.Repo.AppendEntries(deps.Ctx, nil, gen.GenerateGrossEntries(rounds[0], 9, "alice"))
	if err != nil {
		t.Fatalf("AppendEntries returned error: %v", err)
	}
	second, err := deps.Repo.AppendEntries(deps.Ctx, nil, gen.GenerateGrossEntries(rounds[1], 9, "bob"))
	if err != nil {
		t.Fatalf("AppendEntries returned error: %v", err)
	}

	stored := append(first, second...)
	for i := 1; i < len(stored); i++ {
		if stored[i].Seq <= stored[i-1].Seq {
			t.Fatalf("seq not increasing at %d: %d after %d", i, stored[i].Seq, stored[i-1].Seq)
		}
	}

	all, err := deps.Repo.EntriesForGame(deps.Ctx, nil, game.ID)
	if err != nil {
		t.Fatalf("EntriesForGame returned error: %v", err)
	}
	if len(all) != 18 {
		t.Fatalf("expected 18 entries, got %d", len(all))
	}
	for i, e := range all {
		if e.Seq != stored[i].Seq {
			t.Errorf("entry %d: expected seq %d, got %d", i, stored[i].Seq, e.Seq)
		}
	}

	perRound, err := deps.Repo.EntriesForRound(deps.Ctx, nil, rounds[1].ID)
	if err != nil {
		t.Fatalf("EntriesForRound returned error: %v", err)
	}
	if len(perRound) != 9 || perRound[0].Writer != "bob" {
		t.Errorf("unexpected round entries: %+v", perRound)
	}
}

func TestScoreLog_RejectsUpdateAndDelete(t *testing.T) {
	deps := SetupTestScoreService(t)
	gen := testutils.NewTestDataGenerator(7)

	game := gen.GenerateGame(1)
	round := gen.GenerateRounds(game, gen.GenerateTee())[0]
	if _, err := deps.Repo.AppendEntries(deps.Ctx, nil, gen.GenerateGrossEntries(round, 3, "alice")); err != nil {
		t.Fatalf("AppendEntries returned error: %v", err)
	}

	if _, err := deps.BunDB.ExecContext(deps.Ctx, "UPDATE score_entries SET value = '1' WHERE round_id = ?", round.ID); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if _, err := deps.BunDB.ExecContext(deps.Ctx, "DELETE FROM score_entries WHERE round_id = ?", round.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	entries, err := deps.Repo.EntriesForRound(deps.Ctx, nil, round.ID)
	if err != nil {
		t.Fatalf("EntriesForRound returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries to survive, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Value == "1" {
			t.Errorf("entry %d was updated", e.Seq)
		}
	}
}

func TestRecordScore_LatestWriteWins(t *testing.T) {
	deps := SetupTestScoreService(t)
	gen := testutils.NewTestDataGenerator(11)

	game := gen.GenerateGame(1)
	round := gen.GenerateRounds(game, gen.GenerateTee())[0]

	recorded, err := deps.PubSub.Subscribe(deps.Ctx, scoringevents.ScoreRecordedV1)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ts := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	writes := []scoreservice.RecordScoreCommand{
		{GameID: game.ID, RoundID: round.ID, PlayerID: round.PlayerID, Hole: "1", Key: golftypes.KeyGross, Value: "5", Writer: "alice", TS: ts},
		{GameID: game.ID, RoundID: round.ID, PlayerID: round.PlayerID, Hole: "1", Key: golftypes.KeyGross, Value: "4", Writer: "bob", TS: ts.Add(time.Minute)},
	}
	for _, w := range writes {
		result, err := deps.Service.RecordScore(deps.Ctx, w)
		if err != nil {
			t.Fatalf("RecordScore returned error: %v", err)
		}
		if !result.IsSuccess() {
			t.Fatalf("RecordScore failed: %+v", result.Failure)
		}
	}

	writers := map[string]bool{}
	for i := range writes {
		select {
		case msg := <-recorded:
			var payload scoringevents.ScoreRecordedPayloadV1
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				t.Fatalf("unmarshal recorded event: %v", err)
			}
			if payload.Seq == 0 {
				t.Errorf("event %d has no seq: %+v", i, payload)
			}
			writers[payload.Writer] = true
			msg.Ack()
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for recorded event %d", i)
		}
	}
	if !writers["alice"] || !writers["bob"] {
		t.Errorf("expected events from alice and bob, got %v", writers)
	}

	scores, err := deps.Service.RoundLogs(deps.Ctx, round.ID)
	if err != nil {
		t.Fatalf("RoundLogs returned error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one hole, got %d", len(scores))
	}
	if len(scores[0].Values) != 2 {
		t.Fatalf("expected both writes kept, got %d", len(scores[0].Values))
	}
	current := scoredomain.Resolve(scores[0].Values)[golftypes.KeyGross]
	if current.V != "4" || current.By != "bob" {
		t.Errorf("expected bob's 4 to win, got %+v", current)
	}
}

func TestRecordScores_InvalidWriteStoresNothing(t *testing.T) {
	deps := SetupTestScoreService(t)
	gen := testutils.NewTestDataGenerator(13)

	game := gen.GenerateGame(1)
	round := gen.GenerateRounds(game, gen.GenerateTee())[0]

	result, err := deps.Service.RecordScores(deps.Ctx, game.ID, []scoreservice.RecordScoreCommand{
		{RoundID: round.ID, PlayerID: round.PlayerID, Hole: "1", Key: golftypes.KeyGross, Value: "5", Writer: "alice"},
		{RoundID: round.ID, PlayerID: round.PlayerID, Hole: "19", Key: golftypes.KeyGross, Value: "5", Writer: "alice"},
	})
	if err != nil {
		t.Fatalf("RecordScores returned error: %v", err)
	}
	if !result.IsFailure() {
		t.Fatal("expected a failure for hole 19")
	}

	entries, err := deps.Repo.EntriesForGame(deps.Ctx, nil, game.ID)
	if err != nil {
		t.Fatalf("EntriesForGame returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
