package service

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"voting_web/internal/models"
	"voting_web/internal/testutil"
)

func TestCastVotePreconditions(t *testing.T) {
	services, repos := newTestServices(t, models.PollStatusOngoing)
	voter := testutil.CreateTestUser(t, repos, "Ivy", models.RoleVoter)

	poll, err := services.Poll.CreatePoll(validPollInput(), 1)
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}
	otherPoll, err := services.Poll.CreatePoll(validPollInput(), 1)
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	optionID := poll.Options[0].ID
	foreignOptionID := otherPoll.Options[0].ID

	// 不存在的投票
	if _, err := services.Vote.CastVote(9999, voter.ID, optionID); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("CastVote() on missing poll error = %v, want %v", err, ErrPollNotFound)
	}

	// 選項不屬於這場投票
	if _, err := services.Vote.CastVote(poll.ID, voter.ID, foreignOptionID); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("CastVote() with foreign option error = %v, want %v", err, ErrInvalidOption)
	}

	// 正常投票
	vote, err := services.Vote.CastVote(poll.ID, voter.ID, optionID)
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if vote.PollID != poll.ID || vote.VoterID != voter.ID || vote.OptionID != optionID {
		t.Errorf("Vote row = %+v, want poll %d voter %d option %d", vote, poll.ID, voter.ID, optionID)
	}

	// 同一人再投一次，即使換選項也被拒絕
	if _, err := services.Vote.CastVote(poll.ID, voter.ID, poll.Options[1].ID); !errors.Is(err, ErrDuplicateVote) {
		t.Errorf("CastVote() duplicate error = %v, want %v", err, ErrDuplicateVote)
	}
}

func TestCastVoteOnInactivePoll(t *testing.T) {
	services, repos := newTestServices(t, models.PollStatusPending)
	voter := testutil.CreateTestUser(t, repos, "Jack", models.RoleVoter)

	poll, err := services.Poll.CreatePoll(validPollInput(), 1)
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	// pending 狀態不可投票
	if _, err := services.Vote.CastVote(poll.ID, voter.ID, poll.Options[0].ID); !errors.Is(err, ErrPollNotActive) {
		t.Errorf("CastVote() on pending poll error = %v, want %v", err, ErrPollNotActive)
	}

	if _, err := services.Poll.StartPoll(poll.ID); err != nil {
		t.Fatalf("StartPoll() error = %v", err)
	}
	if _, err := services.Poll.EndPoll(poll.ID); err != nil {
		t.Fatalf("EndPoll() error = %v", err)
	}

	// 已結束的投票一律拒絕，選項有效與否都一樣
	if _, err := services.Vote.CastVote(poll.ID, voter.ID, poll.Options[0].ID); !errors.Is(err, ErrPollNotActive) {
		t.Errorf("CastVote() on ended poll error = %v, want %v", err, ErrPollNotActive)
	}
	if _, err := services.Vote.CastVote(poll.ID, voter.ID, 9999); !errors.Is(err, ErrPollNotActive) {
		t.Errorf("CastVote() on ended poll with bad option error = %v, want %v", err, ErrPollNotActive)
	}
}

// TestCastVoteConcurrentDuplicate 驗證同一位投票者同時送出多票時，
// 只有一筆寫入成功，其餘都以重複投票拒絕
func TestCastVoteConcurrentDuplicate(t *testing.T) {
	services, repos := newTestServices(t, models.PollStatusOngoing)
	voter := testutil.CreateTestUser(t, repos, "Kate", models.RoleVoter)

	poll, err := services.Poll.CreatePoll(validPollInput(), 1)
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}
	optionID := poll.Options[0].ID

	const attempts = 8
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := services.Vote.CastVote(poll.ID, voter.ID, optionID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrDuplicateVote):
				duplicateCount.Add(1)
			default:
				t.Errorf("CastVote() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Successful votes = %d, want exactly 1", successCount.Load())
	}
	if duplicateCount.Load() != attempts-1 {
		t.Errorf("Duplicate rejections = %d, want %d", duplicateCount.Load(), attempts-1)
	}

	count, err := repos.Vote.CountByPoll(poll.ID)
	if err != nil {
		t.Fatalf("CountByPoll() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Vote rows = %d, want exactly 1", count)
	}
}

func TestTallyPercentages(t *testing.T) {
	services, repos := newTestServices(t, models.PollStatusOngoing)

	input := validPollInput()
	input.Options = []string{"Alice", "Bob", "Carol"}
	poll, err := services.Poll.CreatePoll(input, 1)
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	// 尚未有票時全部為 0，不是錯誤
	results, err := services.Vote.Tally(poll.ID)
	if err != nil {
		t.Fatalf("Tally() error = %v", err)
	}
	if results.TotalVotes != 0 {
		t.Errorf("TotalVotes = %d, want 0", results.TotalVotes)
	}
	for _, result := range results.Results {
		if result.Percentage != 0 {
			t.Errorf("Option %s percentage = %v, want 0", result.Label, result.Percentage)
		}
	}

	voters := []string{"Liam", "Mona", "Nina"}
	targets := []uint{poll.Options[0].ID, poll.Options[0].ID, poll.Options[1].ID}
	for i, name := range voters {
		voter := testutil.CreateTestUser(t, repos, name, models.RoleVoter)
		if _, err := services.Vote.CastVote(poll.ID, voter.ID, targets[i]); err != nil {
			t.Fatalf("CastVote() for %s error = %v", name, err)
		}
	}

	results, err = services.Vote.Tally(poll.ID)
	if err != nil {
		t.Fatalf("Tally() error = %v", err)
	}
	if results.TotalVotes != 3 {
		t.Fatalf("TotalVotes = %d, want 3", results.TotalVotes)
	}

	// 選項依建立順序排列，百分比取到小數點後兩位
	want := []struct {
		label      string
		votes      int64
		percentage float64
	}{
		{"Alice", 2, 66.67},
		{"Bob", 1, 33.33},
		{"Carol", 0, 0},
	}
	var sum float64
	for i, expected := range want {
		got := results.Results[i]
		if got.Label != expected.label || got.VoteCount != expected.votes || got.Percentage != expected.percentage {
			t.Errorf("Result %d = %+v, want %+v", i, got, expected)
		}
		sum += got.Percentage
	}
	if math.Abs(sum-100) > 0.02 {
		t.Errorf("Percentages sum = %v, want 100 within rounding", sum)
	}

	if _, err := services.Vote.Tally(9999); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Tally() on missing poll error = %v, want %v", err, ErrPollNotFound)
	}
}
