package mypubsub

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// InMemoryPubSub keeps published messages per topic. Used when running locally and in tests.
type InMemoryPubSub struct {
	sync.Mutex
	messages map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = func(c context.Context) (PubSub, func(), error) {
			return NewInMemoryPubSub(), func() {}, nil
		}
	}
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		messages: map[string][]string{},
	}
}

func (ps *InMemoryPubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.messages[topic]; !exists {
		ps.messages[topic] = []string{}
	}
	return nil
}

func (ps *InMemoryPubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.messages[topic]; !exists {
		return fmt.Errorf("topic %s does not exist", topic)
	}
	ps.messages[topic] = append(ps.messages[topic], data)
	return nil
}

func (ps *InMemoryPubSub) Messages(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.messages[topic]...)
}
