// Package main Subscription Tracker API
//
// @title           Subscription Tracker API
// @version         1.0
// @description     API учёта подписок: платежи, напоминания и статистика

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1
package main

//go:generate swag init -d ./,../../internal -g main.go -o ../../internal/docs --parseInternal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/subscription-tracker/internal/cli"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cli.NewRootCommand(logger, level).ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
