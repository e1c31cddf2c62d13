// Package main 创意生成终端客户端入口
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"

	"idea-relay/internal/infrastructure/relay"
	"idea-relay/internal/interfaces/tui"
	"idea-relay/pkg/logger"
)

type clientConfig struct {
	RelayURL string `env:"IDEA_RELAY_URL" default:"http://localhost:5000"`
	LogFile  string `env:"IDEA_CLIENT_LOG" default:"idea-client.log"`
	LogLevel string `env:"IDEA_CLIENT_LOG_LEVEL" default:"info"`
}

func main() {
	_ = godotenv.Load()

	var cfg clientConfig
	if err := env.Set(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 终端由界面占用，日志写入文件
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.InitWithWriter(cfg.LogLevel, "json", logFile)

	client, err := relay.NewClient(cfg.RelayURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid relay URL: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, logger.SessionIDKey, client.SessionID())
	logger.Info(ctx, "idea client started", "relay_url", cfg.RelayURL)

	p := tea.NewProgram(tui.New(ctx, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error(ctx, "tui exited with error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
