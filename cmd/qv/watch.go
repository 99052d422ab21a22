package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/groblegark/quotevault/internal/events"
	"github.com/groblegark/quotevault/internal/ui"
)

func defaultNATSURL() string {
	if s := os.Getenv("QUOTEVAULT_NATS_URL"); s != "" {
		return s
	}
	if u := activeRemoteNATSURL(); u != "" {
		return u
	}
	return nats.DefaultURL
}

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream audit events from the server",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats")
		topic, _ := cmd.Flags().GetString("topic")

		sub, err := events.NewNATSSubscriber(natsURL)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", topic, err)
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", topic)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)

		for {
			select {
			case <-sigCh:
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(data)
			}
		}
	},
}

func printEvent(data []byte) {
	ts := time.Now().Format("15:04:05")
	if jsonOutput {
		fmt.Println(string(data))
		return
	}

	var restored events.VersionRestored
	if err := json.Unmarshal(data, &restored); err == nil && restored.NewVersionID != "" {
		fmt.Printf("[%s] %s %s -> %s (%s, by %s)\n",
			ui.RenderMuted(ts), ui.RenderAccent("restore"),
			restored.PreviousVersionID, restored.NewVersionID,
			restored.Strategy, restored.Actor)
		return
	}
	fmt.Printf("[%s] %s\n", ui.RenderMuted(ts), string(data))
}

func init() {
	watchCmd.Flags().String("nats", defaultNATSURL(), "NATS server URL")
	watchCmd.Flags().String("topic", "quotevault.>", "subject to subscribe to (supports wildcards)")
}
