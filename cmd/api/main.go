package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/ai"
	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	"github.com/yourusername/quizgen-api/internal/handler"
	"github.com/yourusername/quizgen-api/internal/middleware"
	pgRepo "github.com/yourusername/quizgen-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizgen-api/internal/repository/redis"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/pkg/auth"
	"github.com/yourusername/quizgen-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Создаем пользователей по умолчанию
	if err := database.SeedDefaultUsers(db); err != nil {
		log.Printf("Failed to seed default users: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	// Redis опционален: без него ключи ответов читаются напрямую из БД
	var cacheRepo *redisRepo.CacheRepo
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")

		cacheRepo, err = redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("Redis не сконфигурирован, кеш ключей ответов отключен")
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Клиент генеративного сервиса
	aiClient := ai.NewClient(
		cfg.AI.APIKey,
		cfg.AI.Model,
		cfg.AI.BaseURL,
		ai.RetryPolicy{
			MaxAttempts: cfg.AI.MaxAttempts,
			BaseDelay:   time.Duration(cfg.AI.BaseDelayMs) * time.Millisecond,
		},
		time.Duration(cfg.AI.TimeoutSec)*time.Second,
	)

	// Инициализируем сервисы.
	// Интерфейсная переменная нужна: типизированный nil *CacheRepo не равен nil
	var cache repository.CacheRepository
	if cacheRepo != nil {
		cache = cacheRepo
	}

	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	quizService := service.NewQuizService(quizRepo, questionRepo, cache, aiClient)
	scoreService := service.NewScoreService(scoreRepo, quizRepo, questionRepo, cache)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService, scoreService)
	scoreHandler := handler.NewScoreHandler(scoreService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()
	router.Use(middleware.RequestID())

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статические файлы фронтенда
	router.Static("/public", "./public")
	router.GET("/", func(c *gin.Context) {
		c.File("./public/index.html")
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Викторины (для аутентифицированных пользователей)
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("", quizHandler.ListQuizzes)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)

				// Сдавать викторины могут только студенты
				studentQuiz := quizWithID.Group("")
				studentQuiz.Use(authMiddleware.StudentOnly())
				{
					studentQuiz.POST("/submit", scoreHandler.SubmitQuiz)
				}
			}
		}

		// История результатов текущего пользователя
		myScores := api.Group("/my-scores")
		myScores.Use(authMiddleware.RequireAuth(), authMiddleware.StudentOnly())
		{
			myScores.GET("", scoreHandler.GetMyScores)
		}

		// Администрирование
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/generate-quiz", quizHandler.GenerateQuiz)
			admin.GET("/quizzes", quizHandler.ListQuizSummaries)

			adminQuizWithID := admin.Group("/quizzes/:id")
			adminQuizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				adminQuizWithID.DELETE("", quizHandler.DeleteQuiz)
				adminQuizWithID.GET("/attempts", quizHandler.ListQuizAttempts)
				adminQuizWithID.GET("/attempts/export", quizHandler.ExportQuizAttempts)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
