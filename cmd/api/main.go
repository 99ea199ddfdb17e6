package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/export"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/providers/image"
	"server/internal/providers/prompt"
	"server/internal/providers/stock"
	"server/internal/session"
	"server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare artwork storage")
	}

	store := session.NewStore(session.StoreOptions{
		TTL:            cfg.SessionTTL,
		SearchDebounce: cfg.SearchDebounce,
	})
	defer store.Close()

	textProvider := prompt.NewGeminiClient(prompt.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiTextModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	imageProvider := image.NewGeminiGenerator(image.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiImageModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	searcher := stock.NewMulti(
		stock.NewPexelsClient(stock.PexelsOptions{APIKey: cfg.PexelsAPIKey}),
		stock.NewUnsplashClient(stock.UnsplashOptions{AccessKey: cfg.UnsplashAccessKey}),
	)
	renderer := export.NewRenderer(export.Options{
		Dim:     cfg.ScreenshotDimension,
		Timeout: cfg.RenderTimeout,
	})

	app := &handlers.App{
		Logger:         logger,
		Store:          store,
		Describer:      textProvider,
		Enhancer:       textProvider,
		Generator:      imageProvider,
		Searcher:       searcher,
		Files:          files,
		Renderer:       renderer,
		StorageBaseURL: cfg.StorageBaseURL,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
