package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"voting_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// LiveHandler 處理即時結果的 WebSocket 連接
type LiveHandler struct {
	broadcaster *service.ResultsBroadcaster
	voteService *service.VoteService
}

// NewLiveHandler 創建一個新的 LiveHandler 實例
func NewLiveHandler(broadcaster *service.ResultsBroadcaster, voteService *service.VoteService) *LiveHandler {
	return &LiveHandler{
		broadcaster: broadcaster,
		voteService: voteService,
	}
}

// HandleLive 處理即時結果的訂閱請求
// 連接建立後先推送一次目前的計票結果，之後每次成功投票都會收到更新
func (h *LiveHandler) HandleLive(c *gin.Context) {
	pollID, err := parsePollID(c)
	if err != nil {
		return
	}

	// 確認投票存在，並取得目前結果作為第一則消息
	results, err := h.voteService.Tally(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 先推送目前的計票結果，讓訂閱者不必等到下一票才有畫面
	if err := conn.WriteJSON(&service.ResultsMessage{
		Type:    "results",
		PollID:  pollID,
		Results: results,
	}); err != nil {
		conn.Close()
		return
	}

	sub := &service.Subscriber{
		Conn:   conn,
		UserID: userID.(uint),
		PollID: pollID,
	}

	// 阻塞處理訂閱者連接直到斷線
	h.broadcaster.HandleSubscriber(sub)
}
