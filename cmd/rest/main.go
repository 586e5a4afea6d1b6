package main

import (
	"context"
	"log"

	"github.com/nurfahmi/Agentic-Wa/internal/bootstrap"
	"github.com/nurfahmi/Agentic-Wa/internal/config"
	"github.com/nurfahmi/Agentic-Wa/internal/server"
	"github.com/nurfahmi/Agentic-Wa/internal/tracer"
	"github.com/nurfahmi/Agentic-Wa/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	go func() {
		log.Println("Background: Starting Turn Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Turn Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Knowledge Index Consumer...")
		if err := container.KnowledgeService.ConsumeIndexJobs(context.Background()); err != nil {
			log.Printf("Background Index Consumer Error: %v", err)
		}
	}()
	if err := container.EventFeedService.Start(); err != nil {
		log.Printf("Agent Feed Bridge Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
