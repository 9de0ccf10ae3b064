package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/account-service/internal/models"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCodeDeliverySubscriber(t *testing.T) {
	out := &lockedBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))

	pubSub := NewGoChannelPubSub(logger)
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivery := NewCodeDeliverySubscriber(pubSub, logger)
	go func() {
		_ = delivery.Run(ctx)
	}()

	// Give the subscription a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	publisher := NewWatermillPublisher(pubSub, AccountEventsTopic, logger)
	err := publisher.Publish(ctx, EventVerificationCodeIssued, &CodeIssuedEvent{
		Email: "d@example.com",
		Role:  models.RoleDonor,
		Code:  "9037",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), "9037") {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	logged := out.String()
	if !strings.Contains(logged, "code issued") {
		t.Fatalf("expected delivery log, got: %s", logged)
	}
	if !strings.Contains(logged, "d@example.com") || !strings.Contains(logged, "9037") {
		t.Errorf("delivery log missing recipient or code: %s", logged)
	}
}
