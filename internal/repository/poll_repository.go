package repository

import (
	"gorm.io/gorm"

	"voting_web/internal/models"
	"voting_web/internal/storage"
)

type PollRepository interface {
	CreateWithOptions(poll *models.Poll, options []models.Option) error
	FindByID(id uint) (*models.Poll, error)
	FindByIDWithOptions(id uint) (*models.Poll, error)
	Update(poll *models.Poll) error
	FindByStatus(status models.PollStatus) ([]models.Poll, error)
}

type pollRepository struct {
	db *storage.PostgresDB
}

func NewPollRepository(db *storage.PostgresDB) PollRepository {
	return &pollRepository{db: db}
}

// CreateWithOptions 在同一個交易中建立投票與其所有選項
// 任一步驟失敗時整筆回滾，不會留下孤兒資料
func (r *pollRepository) CreateWithOptions(poll *models.Poll, options []models.Option) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}

		for i := range options {
			options[i].PollID = poll.ID
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}

		poll.Options = options
		return nil
	})
}

func (r *pollRepository) FindByID(id uint) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.First(&poll, id).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// FindByIDWithOptions 查詢投票並載入選項，選項依建立順序排序
func (r *pollRepository) FindByIDWithOptions(id uint) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.id ASC")
	}).First(&poll, id).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) Update(poll *models.Poll) error {
	return r.db.Save(poll).Error
}

// FindByStatus 查詢指定狀態的投票，status 為空時回傳全部，新建立的在前
func (r *pollRepository) FindByStatus(status models.PollStatus) ([]models.Poll, error) {
	var polls []models.Poll
	query := r.db.Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&polls).Error
	return polls, err
}
