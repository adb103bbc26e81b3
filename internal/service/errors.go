package service

import "errors"

// 輸入驗證錯誤，每種對應一個獨立的使用者訊息
var (
	ErrTitleTooShort      = errors.New("投票標題至少需要5個字元")
	ErrMissingDescription = errors.New("投票描述不可為空")
	ErrMissingQuestion    = errors.New("投票問題不可為空")
	ErrInvalidDate        = errors.New("無效的日期格式")
	ErrStartInPast        = errors.New("開始時間不可早於現在")
	ErrEndBeforeStart     = errors.New("結束時間必須晚於開始時間")
	ErrTooFewOptions      = errors.New("至少需要兩個非空白的選項")

	ErrMissingUserField   = errors.New("所有欄位皆為必填")
	ErrInvalidRole        = errors.New("無效的角色")
	ErrInvalidEmail       = errors.New("無效的信箱格式")
	ErrWeakPassword       = errors.New("密碼至少需要8個字元")
	ErrPasswordComplexity = errors.New("密碼需包含大寫字母、小寫字母與數字")
)

// 領域衝突與查無資料錯誤
var (
	ErrPollNotFound       = errors.New("投票不存在")
	ErrCandidateNotFound  = errors.New("候選人不存在")
	ErrUserNotFound       = errors.New("用戶不存在")
	ErrPollNotActive      = errors.New("投票未在進行中")
	ErrPollEnded          = errors.New("投票已結束")
	ErrDuplicateVote      = errors.New("您已經在此投票中投過票")
	ErrInvalidOption      = errors.New("此投票中沒有這個選項")
	ErrEmailTaken         = errors.New("此信箱已被註冊")
	ErrInvalidCredentials = errors.New("信箱或密碼錯誤")
)

// IsValidationError 判斷錯誤是否屬於輸入驗證類，handler 依此回應 400
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrTitleTooShort, ErrMissingDescription, ErrMissingQuestion,
		ErrInvalidDate, ErrStartInPast, ErrEndBeforeStart, ErrTooFewOptions,
		ErrMissingUserField, ErrInvalidRole, ErrInvalidEmail,
		ErrWeakPassword, ErrPasswordComplexity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
