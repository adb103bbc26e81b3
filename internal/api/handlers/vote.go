package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voting_web/internal/service"
)

// VoteHandler 處理投票與計票相關的請求
type VoteHandler struct {
	voteService *service.VoteService
}

// NewVoteHandler 創建一個新的 VoteHandler 實例
func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote 處理投下一票的請求
// candidate_id 是 option_id 的相容別名，對應候選人模式的舊介面
func (h *VoteHandler) CastVote(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	var input struct {
		OptionID    uint `json:"option_id"`
		CandidateID uint `json:"candidate_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	optionID := input.OptionID
	if optionID == 0 {
		optionID = input.CandidateID
	}
	if optionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "必須指定選項"})
		return
	}

	userID, _ := c.Get("userID")

	vote, err := h.voteService.CastVote(pollID, userID.(uint), optionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "投票成功",
		"vote":    vote,
	})
}

// GetResults 處理獲取計票結果的請求
func (h *VoteHandler) GetResults(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	results, err := h.voteService.Tally(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
