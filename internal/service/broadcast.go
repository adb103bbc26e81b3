package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ResultsMessage 推送給即時訂閱者的消息
type ResultsMessage struct {
	Type    string       `json:"type"` // results 或 system
	PollID  uint         `json:"poll_id"`
	Results *PollResults `json:"results,omitempty"`
	Content string       `json:"content,omitempty"`
}

// Subscriber 代表一個訂閱即時結果的 WebSocket 客戶端連接
type Subscriber struct {
	Conn     *websocket.Conn      // WebSocket 連接
	UserID   uint                 // 用戶 ID
	PollID   uint                 // 訂閱的投票 ID
	SendChan chan *ResultsMessage // 消息發送通道，用於異步傳送消息
}

// ResultsBroadcaster 管理所有即時結果的 WebSocket 連接
// 每次成功投票與投票結束時，向對應投票的所有訂閱者推送最新計票
type ResultsBroadcaster struct {
	subscribers map[uint]map[*Subscriber]bool // 兩層 map: pollID -> subscriber -> bool
	subMux      sync.RWMutex                  // 保護 subscribers map 的讀寫鎖
}

// NewResultsBroadcaster 創建並初始化新的廣播器
func NewResultsBroadcaster() *ResultsBroadcaster {
	return &ResultsBroadcaster{
		subscribers: make(map[uint]map[*Subscriber]bool),
	}
}

// HandleSubscriber 處理新的訂閱連接，阻塞直到連接關閉
func (b *ResultsBroadcaster) HandleSubscriber(sub *Subscriber) {
	sub.SendChan = make(chan *ResultsMessage, 256)
	b.addSubscriber(sub)

	// 確保連接關閉時清理資源
	defer func() {
		b.removeSubscriber(sub)
		sub.Conn.Close()
	}()

	go b.writePump(sub)
	b.readPump(sub)
}

// readPump 維持連接存活並偵測斷線，收到的內容一律丟棄
// 即時結果是單向推送，客戶端不需要送任何東西
func (b *ResultsBroadcaster) readPump(sub *Subscriber) {
	sub.Conn.SetReadLimit(512)
	sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.Conn.SetPongHandler(func(string) error {
		sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Errorf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向訂閱者發送消息的邏輯
func (b *ResultsBroadcaster) writePump(sub *Subscriber) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-sub.SendChan:
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				sub.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			messageBytes, err := json.Marshal(message)
			if err != nil {
				logrus.Errorf("message encoding error: %v", err)
				continue
			}

			if err := sub.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastResults 向一場投票的所有訂閱者推送最新計票結果
func (b *ResultsBroadcaster) BroadcastResults(pollID uint, results *PollResults) {
	b.broadcast(pollID, &ResultsMessage{
		Type:    "results",
		PollID:  pollID,
		Results: results,
	})
}

// BroadcastSystemMessage 發送系統消息到指定投票的訂閱者
func (b *ResultsBroadcaster) BroadcastSystemMessage(pollID uint, content string) {
	b.broadcast(pollID, &ResultsMessage{
		Type:    "system",
		PollID:  pollID,
		Content: content,
	})
}

func (b *ResultsBroadcaster) broadcast(pollID uint, message *ResultsMessage) {
	// 在鎖內先把訂閱者複製出來，map 可能同時被新訂閱者修改，
	// 不可在釋放鎖後繼續迭代原本的 map
	b.subMux.RLock()
	subscribers := make([]*Subscriber, 0, len(b.subscribers[pollID]))
	for sub := range b.subscribers[pollID] {
		subscribers = append(subscribers, sub)
	}
	b.subMux.RUnlock()

	var slow []*Subscriber
	for _, sub := range subscribers {
		select {
		case sub.SendChan <- message:
			// 消息成功加入發送隊列
		default:
			// 訂閱者消息隊列已滿，視為斷線
			slow = append(slow, sub)
		}
	}

	for _, sub := range slow {
		b.removeSubscriber(sub)
		sub.Conn.Close()
	}
}

// addSubscriber 安全地添加新的訂閱者
func (b *ResultsBroadcaster) addSubscriber(sub *Subscriber) {
	b.subMux.Lock()
	defer b.subMux.Unlock()

	if b.subscribers[sub.PollID] == nil {
		b.subscribers[sub.PollID] = make(map[*Subscriber]bool)
	}
	b.subscribers[sub.PollID][sub] = true
}

// removeSubscriber 安全地移除訂閱者
func (b *ResultsBroadcaster) removeSubscriber(sub *Subscriber) {
	b.subMux.Lock()
	defer b.subMux.Unlock()

	if subscribers, ok := b.subscribers[sub.PollID]; ok {
		delete(subscribers, sub)
		// 如果這場投票已無訂閱者，刪除整個項目
		if len(subscribers) == 0 {
			delete(b.subscribers, sub.PollID)
		}
	}
}

// SubscriberCount 獲取指定投票目前的訂閱者數量
func (b *ResultsBroadcaster) SubscriberCount(pollID uint) int {
	b.subMux.RLock()
	defer b.subMux.RUnlock()

	return len(b.subscribers[pollID])
}
