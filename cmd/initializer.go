package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"procureBack/internal/config"
	"procureBack/internal/handlers"
	"procureBack/internal/repositories"
	"procureBack/internal/services"
	"procureBack/utils"
)

const tokenTTL = 8 * time.Hour

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.Manager

	userHandler      *handlers.UserHandler
	tenderHandler    *handlers.TenderHandler
	quotationHandler *handlers.QuotationHandler
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.JWT.SigningKey, tokenTTL)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	tenderRepo := &repositories.TenderRepository{DB: db}
	invitationRepo := &repositories.InvitationRepository{DB: db}
	quotationRepo := &repositories.QuotationRepository{DB: db}
	comparisonRepo := &repositories.ComparisonRepository{DB: db}
	selectionRepo := &repositories.SelectionRepository{DB: db}
	inventoryRepo := &repositories.InventoryRepository{DB: db}

	// Collaborators
	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	mailer, err := services.NewEmailService(cfg.Mail.From, cfg.Mail.BaseURL, cfg.Storage.Region, errorLog)
	if err != nil {
		return nil, err
	}
	var storage services.DocumentStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := utils.NewS3Storage(cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)
		if err != nil {
			return nil, err
		}
		storage = s3Storage
	}

	// Services
	userService := &services.UserService{UserRepo: userRepo, Tokens: tokens}
	invitationService := &services.InvitationService{
		InvitationRepo: invitationRepo,
		TenderRepo:     tenderRepo,
		UserRepo:       userRepo,
		Cache:          cache,
		ErrorLog:       errorLog,
	}
	tenderService := &services.TenderService{TenderRepo: tenderRepo}
	if mailer != nil {
		tenderService.Mailer = mailer
	}
	quotationService := &services.QuotationService{
		QuotationRepo: quotationRepo,
		TenderRepo:    tenderRepo,
		Invitations:   invitationService,
		Inventory:     inventoryRepo,
		Storage:       storage,
		ErrorLog:      errorLog,
	}
	comparisonService := &services.ComparisonService{TenderRepo: tenderRepo, ComparisonRepo: comparisonRepo}
	selectionService := &services.SelectionService{
		TenderRepo:    tenderRepo,
		QuotationRepo: quotationRepo,
		SelectionRepo: selectionRepo,
	}

	// Handlers
	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		tokens:   tokens,
		userHandler: &handlers.UserHandler{
			Service: userService,
		},
		tenderHandler: &handlers.TenderHandler{
			Service:     tenderService,
			Invitations: invitationService,
		},
		quotationHandler: &handlers.QuotationHandler{
			Service:    quotationService,
			Comparison: comparisonService,
			Selection:  selectionService,
		},
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_DSN")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	return db, nil
}
