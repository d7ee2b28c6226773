package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// IntakeEvent is published after a screening-changing action succeeds.
type IntakeEvent struct {
	Action        string    `json:"action"`
	ScreeningId   string    `json:"screening_id"`
	Target        string    `json:"target,omitempty"`
	Username      string    `json:"username,omitempty"`
	CorrelationId string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

var (
	pubsubClient   *pubsub.Client
	pubsubClientMu sync.Mutex
)

// GetClient returns a Pub/Sub client, initializing with retries if needed.
// It uses Application Default Credentials unless PUBSUB_CREDENTIALS_JSON is provided.
func GetClient(ctx context.Context) (*pubsub.Client, error) {
	return getPubSubClient(ctx)
}

func getPubSubProjectID() string {
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		return v
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		return v
	}
	return os.Getenv("GCP_PROJECT")
}

func getPubSubClient(ctx context.Context) (*pubsub.Client, error) {
	pubsubClientMu.Lock()
	defer pubsubClientMu.Unlock()
	if pubsubClient != nil {
		return pubsubClient, nil
	}

	projectID := getPubSubProjectID()
	if projectID == "" {
		return nil, errors.New("PUBSUB_PROJECT_ID/GOOGLE_CLOUD_PROJECT not set")
	}

	var opts []option.ClientOption
	if credJSON := os.Getenv("PUBSUB_CREDENTIALS_JSON"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	maxAttempts := intFromEnv("PUBSUB_CONNECT_ATTEMPTS", 3)
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var c *pubsub.Client
		c, err = pubsub.NewClient(ctx, projectID, opts...)
		if err == nil {
			pubsubClient = c
			log.Printf("pubsub client ready (project_id=%s attempt=%d)", projectID, attempt)
			return c, nil
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		log.Printf("failed to init pubsub client (project_id=%s attempt=%d): %v; retrying in %s", projectID, attempt, err, sleep)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
	return nil, fmt.Errorf("init pubsub client: %w", err)
}

// PubSubPublisher sends IntakeEvents to INTAKE_EVENTS_TOPIC.
type PubSubPublisher struct {
	topicName string
}

func NewPubSubPublisher() *PubSubPublisher {
	topicName := os.Getenv("INTAKE_EVENTS_TOPIC")
	if topicName == "" {
		topicName = "intake-events"
	}
	return &PubSubPublisher{topicName: topicName}
}

// Publish blocks until the server acknowledges the message.
func (p *PubSubPublisher) Publish(ctx context.Context, event IntakeEvent) error {
	client, err := GetClient(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	result := client.Topic(p.topicName).Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"action": event.Action,
		},
	})
	_, err = result.Get(ctx)
	return err
}

// ClosePubSubClient closes the shared client if one was created.
func ClosePubSubClient() error {
	pubsubClientMu.Lock()
	defer pubsubClientMu.Unlock()
	if pubsubClient == nil {
		return nil
	}
	err := pubsubClient.Close()
	pubsubClient = nil
	return err
}
