package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"voting_web/internal/service"
)

// respondError 將服務層錯誤轉換為對應的 HTTP 狀態碼與 JSON 回應
// 未知錯誤一律記錄後回應通用訊息，不把內部細節洩漏給呼叫端
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPollNotFound),
		errors.Is(err, service.ErrCandidateNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrDuplicateVote),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrPollNotActive),
		errors.Is(err, service.ErrPollEnded),
		errors.Is(err, service.ErrInvalidOption),
		service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		logrus.Errorf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "伺服器內部錯誤"})
	}
}
