package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"bombpad/controller"
)

// bombpad 入口：启动虚拟面板（HTTP + WebSocket），关联网络、加入游戏，然后进入输入循环
func main() {
	var addr, logFile string
	var console bool
	flag.StringVar(&addr, "panel", ":8081", "virtual panel listen address, e.g. :8081")
	flag.StringVar(&logFile, "log", "controller.log", "log file path")
	flag.BoolVar(&console, "console", true, "also write logs to stderr")
	flag.Parse()

	if err := controller.InitLogger(logFile, console); err != nil {
		panic(err)
	}
	defer controller.SyncLogger()
	log := controller.Log

	cfg, err := controller.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	panel := controller.NewPanel()
	metrics := &controller.Metrics{}
	ctrl := controller.New(cfg, controller.Deps{
		Link:    controller.NewDialLink(cfg.Addr(), cfg.LinkRetryDelay),
		API:     controller.NewGameClient(cfg),
		Board:   panel,
		Display: controller.MultiDisplay{controller.LogDisplay{}, panel},
		Metrics: metrics,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", panel.HandleWS)
	mux.Handle("/", http.FileServer(http.Dir("web")))
	mux.HandleFunc("/admin/config", controller.HandleAdminConfig(ctrl))
	mux.HandleFunc("/metrics", controller.HandleMetrics(ctrl))
	mux.HandleFunc("/status", controller.HandleStatus(ctrl))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Infof("panel listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Ctrl+C 退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("bombpad controller start: server=%s pin=%s name=%s", cfg.BaseURL(), cfg.GamePin, cfg.PlayerName)
	if err := ctrl.Setup(ctx); err != nil {
		// 终止错误：停在 HALTED，循环空转直到退出
		log.Errorf("setup failed: %v", err)
	}

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("run: %v", err)
	}
	log.Info("Shutting down...")
	_ = srv.Shutdown(context.Background())
}
