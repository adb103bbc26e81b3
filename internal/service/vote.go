package service

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"voting_web/internal/models"
	"voting_web/internal/repository"
)

// OptionTally 單一選項的計票結果
type OptionTally struct {
	OptionID   uint    `json:"id"`
	Label      string  `json:"label"`
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

// PollResults 一場投票的完整計票結果，選項依建立順序排列
type PollResults struct {
	PollID     uint              `json:"poll_id"`
	Title      string            `json:"title"`
	Status     models.PollStatus `json:"status"`
	TotalVotes int64             `json:"total_votes"`
	Results    []OptionTally     `json:"results"`
}

type VoteService struct {
	pollRepo    repository.PollRepository
	voteRepo    repository.VoteRepository
	broadcaster *ResultsBroadcaster
}

func NewVoteService(pollRepo repository.PollRepository, voteRepo repository.VoteRepository,
	broadcaster *ResultsBroadcaster) *VoteService {
	return &VoteService{
		pollRepo:    pollRepo,
		voteRepo:    voteRepo,
		broadcaster: broadcaster,
	}
}

// CastVote 替投票者在指定投票中投下一票
// 前置檢查依序為：投票存在且進行中、尚未投過票、選項屬於這場投票。
// 事先的重複檢查只是快速路徑，(poll_id, voter_id) 唯一索引
// 才是並發下的最終裁決：同一人同時送出兩票時只有一筆插入成功
func (s *VoteService) CastVote(pollID, voterID, optionID uint) (*models.Vote, error) {
	poll, err := s.pollRepo.FindByIDWithOptions(pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if poll.Status != models.PollStatusOngoing {
		return nil, ErrPollNotActive
	}

	voted, err := s.voteRepo.Exists(pollID, voterID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrDuplicateVote
	}

	validOption := false
	for _, option := range poll.Options {
		if option.ID == optionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return nil, ErrInvalidOption
	}

	vote := &models.Vote{
		PollID:   pollID,
		VoterID:  voterID,
		OptionID: optionID,
	}
	if err := s.voteRepo.Create(vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateVote
		}
		return nil, err
	}

	// 推送最新計票結果給這場投票的即時訂閱者
	// 推送失敗不影響已寫入的選票，但要留下紀錄
	if results, err := s.Tally(pollID); err == nil {
		s.broadcaster.BroadcastResults(pollID, results)
	} else {
		logrus.Errorf("failed to tally poll %d for broadcast: %v", pollID, err)
	}

	return vote, nil
}

// Tally 計算每個選項的得票數與百分比
// 百分比四捨五入到小數點後兩位；沒有任何票時全部為 0，不視為錯誤
func (s *VoteService) Tally(pollID uint) (*PollResults, error) {
	poll, err := s.pollRepo.FindByIDWithOptions(pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	counts, err := s.voteRepo.CountByOptions(pollID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	results := make([]OptionTally, 0, len(poll.Options))
	for _, option := range poll.Options {
		count := counts[option.ID]
		var percentage float64
		if total > 0 {
			percentage = math.Round(float64(count)/float64(total)*10000) / 100
		}
		results = append(results, OptionTally{
			OptionID:   option.ID,
			Label:      option.Label,
			VoteCount:  count,
			Percentage: percentage,
		})
	}

	return &PollResults{
		PollID:     poll.ID,
		Title:      poll.Title,
		Status:     poll.Status,
		TotalVotes: total,
		Results:    results,
	}, nil
}
