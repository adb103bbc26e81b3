package service

import (
	"errors"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"voting_web/internal/models"
	"voting_web/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 驗證註冊資料並建立用戶，密碼以 bcrypt 雜湊後儲存
// 角色在建立後即不可變更
func (s *UserService) Register(name, email, password string, role models.UserRole) (*models.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, ErrMissingUserField
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := checkPasswordStrength(password); err != nil {
		return nil, err
	}

	// 先查信箱是否被使用，唯一索引擋下並發下的漏網之魚
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Authenticate 驗證信箱與密碼，成功時回傳用戶
// 查無用戶與密碼錯誤回傳同一個錯誤，避免洩漏帳號是否存在
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingUserField
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// checkPasswordStrength 要求至少 8 個字元，且包含大寫、小寫與數字
func checkPasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordComplexity
	}
	return nil
}
