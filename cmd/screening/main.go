package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/mindscreen-go/internal/analyzer"
	"github.com/mindcare/mindscreen-go/internal/assessment"
	"github.com/mindcare/mindscreen-go/internal/classifier"
	"github.com/mindcare/mindscreen-go/internal/client"
	"github.com/mindcare/mindscreen-go/internal/config"
	"github.com/mindcare/mindscreen-go/internal/engine"
	"github.com/mindcare/mindscreen-go/internal/handler"
	"github.com/mindcare/mindscreen-go/internal/middleware"
	"github.com/mindcare/mindscreen-go/internal/service"
	"github.com/mindcare/mindscreen-go/pkg/logger"
	"github.com/mindcare/mindscreen-go/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig("configs/screening.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("screening 服务启动中...")

	// 初始化 Redis
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	store := service.NewRedisStore(redisClient)

	// 初始化分析组件
	togetherClient := client.NewTogetherClient(
		cfg.Together.APIKey,
		cfg.Together.Model,
		cfg.Together.MaxTokens,
		cfg.Together.Temperature,
		zapLogger,
	)
	aiClassifier := classifier.NewEmotionalContextClassifier(togetherClient, cfg.Together.RequestTimeout, zapLogger)
	keywordClassifier := classifier.NewKeywordClassifier()
	depthAnalyzer := analyzer.NewConversationDepthAnalyzer()
	temporalExtractor := analyzer.NewTemporalIndicatorExtractor()
	guard := analyzer.NewSuicideRiskGuard()

	// 初始化决策与评分引擎
	transitionEngine := engine.NewTransitionEngine(cfg.Transition, zapLogger)
	followupGenerator := engine.NewFollowupGenerator()
	scoringEngine := assessment.NewScoringEngine(zapLogger)

	// 初始化服务
	assessmentService := service.NewAssessmentService(store, scoringEngine, zapLogger)
	chatService := service.NewChatService(
		store,
		guard,
		aiClassifier,
		keywordClassifier,
		depthAnalyzer,
		temporalExtractor,
		transitionEngine,
		followupGenerator,
		assessmentService,
		zapLogger,
	)

	// 初始化处理器
	chatHandler := handler.NewChatHandler(chatService, zapLogger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, zapLogger)
	wsHandler := handler.NewWebSocketHandler(chatService, zapLogger)

	// 初始化路由
	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/api/health", chatHandler.HandleHealth)

	// WebSocket 端点
	r.GET("/ws/chat", wsHandler.HandleWebSocket)

	// HTTP API
	api := r.Group("/api/v1")
	{
		api.POST("/chat", chatHandler.HandleChat)
		api.GET("/assessments/:type", assessmentHandler.HandleQuestionnaire)
		api.POST("/assessments/start", assessmentHandler.HandleStart)
		api.POST("/assessments/submit", assessmentHandler.HandleSubmit)
	}

	// 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("screening 服务启动成功",
		zap.Int("port", cfg.Server.Port))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("服务启动失败", zap.Error(err))
	}
}
