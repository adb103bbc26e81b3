package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voting_web/internal/api/handlers"
	"voting_web/internal/middleware"
	"voting_web/internal/models"
	"voting_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	pollHandler := handlers.NewPollHandler(services.Poll)
	voteHandler := handlers.NewVoteHandler(services.Vote)
	liveHandler := handlers.NewLiveHandler(services.Broadcaster, services.Vote)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 當前用戶資料
		authorized.GET("/me", authHandler.Me)

		// 投票相關
		polls := authorized.Group("/polls")
		{
			// 任何已登入用戶可讀
			polls.GET("", pollHandler.ListPolls)              // 獲取投票列表
			polls.GET("/:id", pollHandler.GetPoll)            // 獲取投票詳情
			polls.GET("/:id/results", voteHandler.GetResults) // 獲取計票結果
			polls.GET("/:id/live", liveHandler.HandleLive)    // 即時結果 WebSocket

			// 管理員操作
			polls.POST("", middleware.RequireRole(models.RoleAdmin), pollHandler.CreatePoll)
			polls.PUT("/:id/start", middleware.RequireRole(models.RoleAdmin), pollHandler.StartPoll)
			polls.PUT("/:id/end", middleware.RequireRole(models.RoleAdmin), pollHandler.EndPoll)

			// 投票者操作
			polls.POST("/:id/vote", middleware.RequireRole(models.RoleVoter), voteHandler.CastVote)
		}
	}
}
