// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/wellpath/health-advisor/internal/config"
	"github.com/wellpath/health-advisor/internal/domain"
	"github.com/wellpath/health-advisor/internal/handlers"
	"github.com/wellpath/health-advisor/internal/middleware"
	"github.com/wellpath/health-advisor/internal/repository/conversation"
	"github.com/wellpath/health-advisor/internal/repository/message"
	"github.com/wellpath/health-advisor/internal/repository/record"
	"github.com/wellpath/health-advisor/internal/services"
	chatservice "github.com/wellpath/health-advisor/internal/services/chat"
	"github.com/wellpath/health-advisor/internal/services/extract"
	"github.com/wellpath/health-advisor/internal/services/provider"
	"github.com/wellpath/health-advisor/internal/services/storage"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.Record{}, &domain.Conversation{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	recordRepo := record.NewRecordRepository(db)
	conversationRepo := conversation.NewConversationRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Ingestion dependencies ---
	fileStore, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize file store: %v", err)
	}
	extractor := extract.New(nil)

	// --- AI providers ---
	providerCfg := provider.DefaultConfig()
	providerCfg.VolcengineAPIKey = cfg.VolcengineAPIKey
	providerCfg.DeepseekAPIKey = cfg.DeepseekAPIKey
	providerCfg.OpenAIAPIKey = cfg.OpenAIAPIKey
	providerCfg.AnthropicAPIKey = cfg.AnthropicAPIKey
	providerCfg.OllamaEndpoint = cfg.OllamaEndpoint
	providers := provider.NewRegistry(providerCfg)

	// --- Services ---
	recordService, err := services.NewRecordService(recordRepo, fileStore, extractor)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Record Service: %v", err)
	}

	assembler := chatservice.NewContextAssembler(recordRepo)
	chatService, err := services.NewChatService(conversationRepo, messageRepo, assembler, providers, cfg.DefaultProvider)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	recordHandler := handlers.NewRecordHandler(recordService)
	chatHandler := handlers.NewChatHandler(chatService)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Record ingestion and retrieval
	api.HandleFunc("/records/upload", recordHandler.Upload).Methods("POST")
	api.HandleFunc("/records/user/{userId:[0-9]+}", recordHandler.ListUserRecords).Methods("GET")
	api.HandleFunc("/records/{id:[0-9]+}", recordHandler.GetRecord).Methods("GET")
	api.HandleFunc("/records/{id:[0-9]+}", recordHandler.DeleteRecord).Methods("DELETE")
	api.HandleFunc("/records/{id:[0-9]+}/file", recordHandler.DownloadRecordFile).Methods("GET")

	// Conversations
	api.HandleFunc("/chat/conversations", chatHandler.CreateConversation).Methods("POST")
	api.HandleFunc("/chat/conversations/user/{userId:[0-9]+}", chatHandler.GetUserConversations).Methods("GET")
	api.HandleFunc("/chat/conversations/{id:[0-9]+}/messages", chatHandler.GetConversationMessages).Methods("GET")
	api.HandleFunc("/chat/conversations/{id:[0-9]+}/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/conversations/{id:[0-9]+}", chatHandler.UpdateTitle).Methods("PUT")
	api.HandleFunc("/chat/conversations/{id:[0-9]+}", chatHandler.DeleteConversation).Methods("DELETE")
	api.HandleFunc("/chat/models", chatHandler.ListModels).Methods("GET")

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Health Advisor - starting on port %s", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
