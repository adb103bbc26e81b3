package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voting_web/internal/models"
	"voting_web/internal/service"
)

// PollHandler 處理與投票生命週期相關的請求
type PollHandler struct {
	pollService *service.PollService
}

// NewPollHandler 創建一個新的 PollHandler 實例
func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreatePoll 處理建立投票的請求
// options 與 candidate_ids 擇一：後者為候選人模式，以既有用戶作為選項
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var input struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Question     string   `json:"question"`
		StartDate    string   `json:"start_date"`
		EndDate      string   `json:"end_date"`
		Options      []string `json:"options"`
		CandidateIDs []uint   `json:"candidate_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	poll, err := h.pollService.CreatePoll(service.CreatePollInput{
		Title:        input.Title,
		Description:  input.Description,
		Question:     input.Question,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Options:      input.Options,
		CandidateIDs: input.CandidateIDs,
	}, userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "投票建立成功",
		"poll":    poll,
	})
}

// ListPolls 處理投票列表的請求，可用 ?status= 過濾
func (h *PollHandler) ListPolls(c *gin.Context) {
	status := models.PollStatus(c.Query("status"))

	polls, err := h.pollService.ListPolls(status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, polls)
}

// GetPoll 處理獲取投票詳情的請求
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	userID, _ := c.Get("userID")

	detail, err := h.pollService.GetPollDetail(pollID, userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// StartPoll 處理開始投票的請求（pending 轉 ongoing）
func (h *PollHandler) StartPoll(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	poll, err := h.pollService.StartPoll(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "投票開始",
		"poll":    poll,
	})
}

// EndPoll 處理結束投票的請求
func (h *PollHandler) EndPoll(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	poll, err := h.pollService.EndPoll(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "投票已結束",
		"poll":    poll,
	})
}

// parsePollID 解析路徑中的投票 ID，失敗時直接回應 400
func parsePollID(c *gin.Context) (uint, error) {
	pollID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的投票ID"})
		return 0, err
	}
	return uint(pollID), nil
}
