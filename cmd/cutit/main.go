// Command cutit splits a document into semantic chunks and writes them out
// as a markdown task list.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/dgallion1/cutit/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil && errors.Is(envErr, fs.ErrNotExist) {
		envErr = nil
	}

	a := newApp(os.Stdout, os.Stderr, config.LoadEnv())
	if envErr != nil {
		a.log.Warn("ignoring unreadable .env file", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
