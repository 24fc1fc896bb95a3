package main

import (
	"context"
	"encoding/json"
	"fmt"

	"contract-workflow-be/internal/config"
	"contract-workflow-be/pkg/events"
	pktNats "contract-workflow-be/pkg/nats"

	"github.com/spf13/cobra"
)

var (
	eventsFilter  string
	eventsDurable string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print workflow lifecycle events as they are published",
	Args:  cobra.NoArgs,
	RunE:  tailEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsFilter, "type", "", "only show one event type, e.g. WORKFLOW_FAILED")
	eventsCmd.Flags().StringVar(&eventsDurable, "durable", "", "durable consumer name; empty starts from new events")
}

func tailEvents(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	out := cmd.OutOrStdout()
	return sub.Subscribe(cmd.Context(), eventSubject(eventsFilter), eventsDurable, func(ctx context.Context, event events.Event) error {
		line, err := json.Marshal(map[string]interface{}{
			"type":       event.EventType(),
			"occurredAt": event.Timestamp(),
			"data":       event.Payload(),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(line))
		return err
	})
}

func eventSubject(eventType string) string {
	if eventType == "" {
		return pktNats.SubjectPrefix + ">"
	}
	return pktNats.Subject(eventType)
}
