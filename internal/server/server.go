package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"warehouse/internal/config"
	"warehouse/internal/handler"
	"warehouse/internal/middleware"
	"warehouse/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	e   *echo.Echo
	cfg config.Config
}

// echoの組み立て（middleware, renderer, validator, routes）
func New(cfg config.Config, h Handlers) (*Server, error) {
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = validator.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, h)

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	return &Server{e: e, cfg: cfg}, nil
}

// テスト用
func (s *Server) Handler() http.Handler {
	return s.e
}

// ctxがキャンセルされたら ShutdownTimeout 以内に止める
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr()).Msg("warehouse listening")
		if err := s.e.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.e.Shutdown(shutdownCtx)
}
