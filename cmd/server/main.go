package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DyLaNHurtado/mus-game-app/internal/config"
	"github.com/DyLaNHurtado/mus-game-app/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "ruta del fichero de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("no se pudo cargar la configuración, usando valores por defecto: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("error creando el servidor: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("cerrando el servidor...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		os.Exit(0)
	}()

	log.Println("🎮 arrancando el servidor de mus...")
	if err := srv.Start(); err != nil {
		log.Fatalf("el servidor no pudo arrancar: %v", err)
	}
}
