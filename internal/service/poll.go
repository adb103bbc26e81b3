package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"voting_web/internal/models"
	"voting_web/internal/repository"
)

// 允許少量時鐘誤差，startDate 等於「現在」的請求不應被拒絕
const startDateGrace = time.Minute

// CreatePollInput 建立投票的輸入
// Options 與 CandidateIDs 擇一使用：後者為候選人模式，
// 會以用戶的顯示名稱轉成一般選項儲存
type CreatePollInput struct {
	Title        string
	Description  string
	Question     string
	StartDate    string
	EndDate      string
	Options      []string
	CandidateIDs []uint
}

// PollSummary 列表用的投票摘要，附上總票數
type PollSummary struct {
	models.Poll
	VoteCount int64 `json:"vote_count"`
}

// OptionResult 選項及其得票數
type OptionResult struct {
	ID     uint   `json:"id"`
	Label  string `json:"label"`
	Votes  int64  `json:"votes"`
	PollID uint   `json:"poll_id"`
}

// PollDetail 投票詳情，包含每個選項的得票數與請求者是否已投票
type PollDetail struct {
	models.Poll
	OptionResults []OptionResult `json:"candidates"`
	VoteCount     int64          `json:"vote_count"`
	HasVoted      bool           `json:"hasVoted"`
}

type PollService struct {
	pollRepo      repository.PollRepository
	voteRepo      repository.VoteRepository
	userRepo      repository.UserRepository
	broadcaster   *ResultsBroadcaster
	defaultStatus models.PollStatus
}

func NewPollService(pollRepo repository.PollRepository, voteRepo repository.VoteRepository,
	userRepo repository.UserRepository, broadcaster *ResultsBroadcaster,
	defaultStatus models.PollStatus) *PollService {
	return &PollService{
		pollRepo:      pollRepo,
		voteRepo:      voteRepo,
		userRepo:      userRepo,
		broadcaster:   broadcaster,
		defaultStatus: defaultStatus,
	}
}

// CreatePoll 驗證輸入並在單一交易中建立投票與選項
func (s *PollService) CreatePoll(input CreatePollInput, creatorID uint) (*models.Poll, error) {
	// 以字元數計算，中文標題每個字也只算一個字元
	if utf8.RuneCountInString(input.Title) < 5 {
		return nil, ErrTitleTooShort
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrMissingDescription
	}
	if strings.TrimSpace(input.Question) == "" {
		return nil, ErrMissingQuestion
	}

	start, err := time.Parse(time.RFC3339, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(time.RFC3339, input.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if start.Before(time.Now().Add(-startDateGrace)) {
		return nil, ErrStartInPast
	}
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}

	labels, err := s.resolveOptionLabels(input)
	if err != nil {
		return nil, err
	}

	poll := &models.Poll{
		Title:       input.Title,
		Description: input.Description,
		Question:    input.Question,
		StartTime:   start,
		EndTime:     end,
		Status:      s.defaultStatus,
		CreatedBy:   creatorID,
	}

	options := make([]models.Option, 0, len(labels))
	for _, label := range labels {
		options = append(options, models.Option{Label: label})
	}

	if err := s.pollRepo.CreateWithOptions(poll, options); err != nil {
		return nil, err
	}

	return poll, nil
}

// resolveOptionLabels 整理選項文字：去除前後空白、濾掉空白與重複項
// 候選人模式下改以用戶顯示名稱作為選項
func (s *PollService) resolveOptionLabels(input CreatePollInput) ([]string, error) {
	raw := input.Options
	if len(raw) == 0 && len(input.CandidateIDs) > 0 {
		users, err := s.userRepo.FindByIDs(input.CandidateIDs)
		if err != nil {
			return nil, err
		}

		// 依呼叫端給的順序排列，任何一個 ID 查不到就整筆失敗
		names := make(map[uint]string, len(users))
		for _, user := range users {
			names[user.ID] = user.Name
		}
		for _, id := range input.CandidateIDs {
			name, ok := names[id]
			if !ok {
				return nil, ErrCandidateNotFound
			}
			raw = append(raw, name)
		}
	}

	seen := make(map[string]bool)
	labels := make([]string, 0, len(raw))
	for _, label := range raw {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}

	if len(labels) < 2 {
		return nil, ErrTooFewOptions
	}
	return labels, nil
}

// StartPoll 將投票由 pending 轉為 ongoing
// 已在進行中的投票視為無事可做，已結束的投票不可重新開始
func (s *PollService) StartPoll(pollID uint) (*models.Poll, error) {
	poll, err := s.findPoll(pollID)
	if err != nil {
		return nil, err
	}

	switch poll.Status {
	case models.PollStatusOngoing:
		return poll, nil
	case models.PollStatusEnded:
		return nil, ErrPollEnded
	}

	poll.Status = models.PollStatusOngoing
	poll.StartTime = time.Now()
	if err := s.pollRepo.Update(poll); err != nil {
		return nil, err
	}
	return poll, nil
}

// EndPoll 結束投票並以當下時間覆寫結束時間
// 對已結束的投票為冪等操作：不改變任何欄位，直接回傳現況
func (s *PollService) EndPoll(pollID uint) (*models.Poll, error) {
	poll, err := s.findPoll(pollID)
	if err != nil {
		return nil, err
	}

	if poll.Status == models.PollStatusEnded {
		return poll, nil
	}

	poll.Status = models.PollStatusEnded
	poll.EndTime = time.Now()
	if err := s.pollRepo.Update(poll); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastSystemMessage(poll.ID, "投票已結束")
	return poll, nil
}

// ListPolls 依狀態列出投票並附上總票數，status 為空時回傳全部
func (s *PollService) ListPolls(status models.PollStatus) ([]PollSummary, error) {
	polls, err := s.pollRepo.FindByStatus(status)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(polls))
	for _, poll := range polls {
		ids = append(ids, poll.ID)
	}
	counts, err := s.voteRepo.CountByPolls(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]PollSummary, 0, len(polls))
	for _, poll := range polls {
		summaries = append(summaries, PollSummary{Poll: poll, VoteCount: counts[poll.ID]})
	}
	return summaries, nil
}

// GetPollDetail 回傳投票詳情：各選項得票數與請求者是否已投過票
func (s *PollService) GetPollDetail(pollID, requestingUserID uint) (*PollDetail, error) {
	poll, err := s.pollRepo.FindByIDWithOptions(pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	optionCounts, err := s.voteRepo.CountByOptions(pollID)
	if err != nil {
		return nil, err
	}

	var total int64
	results := make([]OptionResult, 0, len(poll.Options))
	for _, option := range poll.Options {
		votes := optionCounts[option.ID]
		total += votes
		results = append(results, OptionResult{
			ID:     option.ID,
			Label:  option.Label,
			Votes:  votes,
			PollID: option.PollID,
		})
	}

	hasVoted, err := s.voteRepo.Exists(pollID, requestingUserID)
	if err != nil {
		return nil, err
	}

	// 選項連同得票數放在 OptionResults，避免在 JSON 裡重複輸出一份
	poll.Options = nil

	return &PollDetail{
		Poll:          *poll,
		OptionResults: results,
		VoteCount:     total,
		HasVoted:      hasVoted,
	}, nil
}

func (s *PollService) findPoll(pollID uint) (*models.Poll, error) {
	poll, err := s.pollRepo.FindByID(pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return poll, nil
}
