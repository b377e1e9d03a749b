package main

import (
	"context"
	"os"
	"os/signal"

	"geoconflate/cmd/conflate-cli/cmd"
	"geoconflate/lib/telemetry"
)

func main() {
	telemetry.InitSlog(os.Getenv("CONFLATE_DEBUG") != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := telemetry.SetupFromEnv(ctx, "conflate-cli")
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
		defer telemetry.Shutdown(context.Background())
	} else if !os.IsNotExist(err) {
		panic(err)
	}

	cmd.Execute(ctx)
}
