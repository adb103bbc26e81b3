package repository

import (
	"voting_web/internal/models"
	"voting_web/internal/storage"
)

type VoteRepository interface {
	Create(vote *models.Vote) error
	Exists(pollID, voterID uint) (bool, error)
	CountByPoll(pollID uint) (int64, error)
	CountByPolls(pollIDs []uint) (map[uint]int64, error)
	CountByOptions(pollID uint) (map[uint]int64, error)
}

type voteRepository struct {
	db *storage.PostgresDB
}

func NewVoteRepository(db *storage.PostgresDB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) Exists(pollID, voterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("poll_id = ? AND voter_id = ?", pollID, voterID).
		Count(&count).Error
	return count > 0, err
}

func (r *voteRepository) CountByPoll(pollID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("poll_id = ?", pollID).Count(&count).Error
	return count, err
}

type voteCount struct {
	Key   uint
	Count int64
}

// CountByPolls 一次查詢多場投票的總票數，回傳 pollID 到票數的對應
func (r *voteRepository) CountByPolls(pollIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(pollIDs) == 0 {
		return counts, nil
	}

	var rows []voteCount
	err := r.db.Model(&models.Vote{}).
		Select("poll_id AS key, COUNT(*) AS count").
		Where("poll_id IN ?", pollIDs).
		Group("poll_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

// CountByOptions 回傳一場投票中每個選項的得票數
func (r *voteRepository) CountByOptions(pollID uint) (map[uint]int64, error) {
	var rows []voteCount
	err := r.db.Model(&models.Vote{}).
		Select("option_id AS key, COUNT(*) AS count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64)
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
