package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tv-keuzehulp-be/pkg/events"
	pktNats "tv-keuzehulp-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	eventsURL     string
	eventsDurable string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail keuzehulp events from NATS JetStream",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsURL, "nats", "", "NATS URL (defaults to NATS_URL)")
	eventsCmd.Flags().StringVar(&eventsDurable, "durable", "", "durable consumer name (empty tails new events only)")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	url := eventsURL
	if url == "" {
		url = cfg.App.NatsURL
	}
	if url == "" {
		return fmt.Errorf("no NATS URL; pass --nats or set NATS_URL")
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, pktNats.Subject(">"), eventsDurable, func(_ context.Context, e events.Event) error {
		printEvent(e)
		return nil
	})
	if err != nil {
		return err
	}

	color.Cyan("Listening on %s (Ctrl+C to stop)", pktNats.Subject(">"))
	<-ctx.Done()
	return nil
}

func printEvent(e events.Event) {
	stamp := e.Timestamp().Format("15:04:05")
	switch e.EventType() {
	case events.TypeUpstreamFailed, events.TypeLoginFailed:
		color.Red("%s %-22s %v", stamp, e.EventType(), e.Payload())
	case events.TypeChatRecommended, events.TypeQuestionnaireEnd:
		color.Green("%s %-22s %v", stamp, e.EventType(), e.Payload())
	default:
		fmt.Printf("%s %-22s %v\n", stamp, e.EventType(), e.Payload())
	}
}
