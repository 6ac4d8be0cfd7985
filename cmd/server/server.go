package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/seagalputra/talkbox/internal/config"
	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/handlers"
	"github.com/seagalputra/talkbox/internal/mailer"
	"github.com/seagalputra/talkbox/internal/uploads"
	ws "github.com/seagalputra/talkbox/internal/websocket"
	"github.com/seagalputra/talkbox/pkg/auth"
)

const tokenDuration = 730 * time.Hour

type Server struct {
	Router     *gin.Engine
	Config     config.Config
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, tokenDuration)

	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.EmailSenderName, cfg.EmailConfirmationURL)

	var uploader *uploads.Uploader
	if cfg.CloudinaryCloudName != "" {
		uploader, err = uploads.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatalf("Cloudinary init failed: %v", err)
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb, m)
	userH := handlers.NewUserHandler(dbConn, uploader)
	roomH := handlers.NewRoomHandler(dbConn, hub)
	messageH := handlers.NewMessageHandler(dbConn)
	inboundH := handlers.NewInboundMessageHandler(dbConn, hub)
	wsH := handlers.NewWebSocketHandler(dbConn, hub, inboundH)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	APIEndpoints(router, jwtMgr, rdb, authH, userH, roomH, messageH, wsH)

	return &Server{
		Router:     router,
		Config:     cfg,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	defer s.Hub.Stop()

	log.Printf("Server starting on port %s", s.Config.Port)
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
