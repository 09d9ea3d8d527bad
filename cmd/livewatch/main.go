// livewatch 是一个演示用的小工具：订阅实时价格并把每一帧打到日志里。
// SSE 和 websocket 两条路都走一遍。
package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/finfree/laplace-go/laplace"
	"github.com/finfree/laplace-go/laplace/push"
	"github.com/finfree/laplace-go/pkg/config"
	"github.com/finfree/laplace-go/pkg/logger"
)

type watchConfig struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Laplace struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"laplace"`
	Watch struct {
		Symbols []string `mapstructure:"symbols"`
		UsePush bool     `mapstructure:"use_push"`
	} `mapstructure:"watch"`
}

func main() {
	var cfg watchConfig
	defaults := map[string]any{
		"log.level":     "info",
		"watch.symbols": []string{"TUPRS", "SASA"},
	}
	if _, err := config.Load("livewatch", defaults, &cfg); err != nil {
		panic(err)
	}
	log := logger.New("livewatch", cfg.Log.Level)
	defer log.Sync()

	opts := []laplace.Option{laplace.WithLogger(log)}
	if cfg.Laplace.BaseURL != "" {
		opts = append(opts, laplace.WithBaseURL(cfg.Laplace.BaseURL))
	}
	client, err := laplace.New(cfg.Laplace.APIKey, opts...)
	if err != nil {
		log.Fatal("client init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Watch.UsePush {
		runPush(ctx, log, client, cfg.Watch.Symbols)
	} else {
		runSSE(ctx, log, client, cfg.Watch.Symbols)
	}
}

func runSSE(ctx context.Context, log *zap.Logger, client *laplace.Client, symbols []string) {
	ch, err := client.LivePrice.BISTPrice()
	if err != nil {
		log.Fatal("open live channel failed", zap.Error(err))
	}
	defer ch.Close()

	results, err := ch.Subscribe(ctx, symbols)
	if err != nil {
		log.Fatal("subscribe failed", zap.Error(err))
	}
	log.Info("streaming over sse", zap.Strings("symbols", symbols))
	for r := range results {
		if r.Err != nil {
			log.Error("stream ended", zap.Error(r.Err))
			return
		}
		log.Info("tick",
			zap.String("symbol", r.Data.Symbol),
			zap.Float64("price", r.Data.ClosePrice),
			zap.Float64("change", r.Data.DailyPercent))
	}
}

func runPush(ctx context.Context, log *zap.Logger, client *laplace.Client, symbols []string) {
	pc := push.NewClient(client, "livewatch", []push.Feed{push.FeedLivePriceTR}, push.DefaultOptions())
	if err := pc.Connect(ctx); err != nil {
		log.Fatal("websocket connect failed", zap.Error(err))
	}
	defer pc.Close()

	_, err := pc.Subscribe(push.FeedLivePriceTR, symbols, func(d laplace.LiveData) {
		if tick, ok := d.(laplace.BISTStockLiveData); ok {
			log.Info("tick",
				zap.String("symbol", tick.Symbol),
				zap.Float64("price", tick.ClosePrice),
				zap.Float64("change", tick.DailyPercent))
		}
	})
	if err != nil {
		log.Fatal("subscribe failed", zap.Error(err))
	}
	log.Info("streaming over websocket", zap.Strings("symbols", symbols))
	<-ctx.Done()
	log.Info("shutting down", zap.String("reason", string(pc.CloseReason())))
}
