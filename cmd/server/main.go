package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"runic/internal/config"
	"runic/internal/events"
	"runic/internal/game"
	"runic/internal/network"
	"runic/internal/session"
	"runic/internal/token"
)

func main() {
	// Um config.env ao lado do binário é opcional; sem ele valem as
	// variáveis de ambiente e os defaults.
	_ = godotenv.Load("config.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.ConnectNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Fatal("connect to nats", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	issuer := token.NewIssuer(cfg.CredentialBytes)
	registry := session.NewRegistry(cfg.MaxSessions, cfg.SessionTTL, logger)
	matchmaker := session.NewMatchmaker(issuer, registry,
		func() session.Engine { return game.New() }, publisher, logger)

	server := network.NewServer(map[string]network.EventHandler{
		"host": session.NewHostHandler(matchmaker, registry, logger),
		"game": session.NewGameHandler(registry, cfg.CredentialLen, publisher, logger),
	}, logger)

	if err := server.Listen(cfg.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
