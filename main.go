package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"voting_web/internal/api"
	"voting_web/internal/models"
	"voting_web/internal/repository"
	"voting_web/internal/service"
	"voting_web/internal/storage"
	"voting_web/internal/utils"
	"voting_web/pkg/config"
)

func main() {
	// 載入 .env（若存在），再載入應用程式配置
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// JWT 簽章密鑰來自配置
	utils.InitJWT(cfg.JWT.Secret)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(&models.User{}, &models.Poll{}, &models.Option{}, &models.Vote{}); err != nil {
		logrus.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, models.PollStatus(cfg.Poll.DefaultStatus))

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	logrus.Infof("server listening on %s", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		logrus.Fatalf("Failed to run server: %v", err)
	}
}
