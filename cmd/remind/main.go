// Command remind runs the daily reminder batch once. It is intended to be
// invoked by an external cron at an interval no longer than the reminder
// window.
//
// Exit codes: 0 = batch completed (individual delivery failures included),
// 1 = the batch could not run.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/heartmarshall/lugatlab/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.RunReminders(ctx); err != nil {
		log.Printf("remind: %v", err)
		stop()
		os.Exit(1)
	}
}
