package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/innings-sim/internal/api"
	"github.com/xtding233/innings-sim/internal/config"
	"github.com/xtding233/innings-sim/internal/logging"
	"github.com/xtding233/innings-sim/internal/match"
	"github.com/xtding233/innings-sim/internal/roster"
	"github.com/xtding233/innings-sim/internal/rpc"
)

const reloadInterval = 2 * time.Second

func main() {
	env, err := config.LoadServerEnv(".env")
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(env.LogLevel, env.DevLog)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, env, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, env config.ServerEnv, logger *zap.Logger) error {
	var (
		loader *roster.Loader
		raw    roster.RawConfig
		reg    *roster.Registry
		err    error
	)
	if env.ConfigDir == "" {
		raw, reg, err = roster.Builtin()
	} else {
		loader = roster.NewLoader(env.ConfigDir)
		raw, reg, err = loader.Load(env.League, env.Fixture)
	}
	if err != nil {
		return err
	}
	svc := match.New(raw, reg, logger)
	logger.Info("roster loaded",
		zap.String("dir", env.ConfigDir),
		zap.String("version", raw.Version),
		zap.Int("players", reg.Len()),
	)

	httpSrv := &http.Server{
		Addr:              env.HTTPAddr,
		Handler:           api.SetupRoutes(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpc.NewServer()
	rpc.RegisterInningsServer(grpcSrv, rpc.NewServer(svc, logger))
	lis, err := net.Listen("tcp", env.GRPCAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", env.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("grpc listening", zap.String("addr", env.GRPCAddr))
		return grpcSrv.Serve(lis)
	})
	if loader != nil {
		files := loader.Paths().Files(env.League, env.Fixture)
		w := roster.NewFileWatcher(files, reloadInterval, func(path string) {
			loader.Invalidate()
			raw, reg, err := loader.Load(env.League, env.Fixture)
			if err != nil {
				logger.Warn("reload rejected, keeping previous roster", zap.String("file", path), zap.Error(err))
				return
			}
			svc.Reload(raw, reg)
		})
		g.Go(func() error {
			w.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
