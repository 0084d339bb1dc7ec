package domain

import (
	"context"
	"log/slog"
	"sync"
)

//go:generate go tool mockgen -destination=./mocks/pubsub_mock.go -package=mocks . PubSub

type Topic string

// RoomTopic はルーム宛の入力メッセージのトピックです。
func RoomTopic(id RoomID) Topic { return Topic("room:" + string(id)) }

// RoomEventsTopic はルームが毎tick発行するイベントのトピックです。
func RoomEventsTopic(id RoomID) Topic { return Topic("room:" + string(id) + ":events") }

type Message struct {
	SessionID SessionID
	Data      []byte
}

// PubSub はプロセス内のトピック配送です。
type PubSub interface {
	Publish(ctx context.Context, topic Topic, msg Message)
	Subscribe(topic Topic) <-chan Message
	Unsubscribe(topic Topic, ch <-chan Message)
}

const subscriberBufferSize = 1024

// SimplePubSub はチャネルで購読者に配送する PubSub です。
// 購読者のバッファが満杯の場合、メッセージは破棄されます。
type SimplePubSub struct {
	mu     sync.RWMutex
	topics map[Topic][]chan Message
}

var _ PubSub = (*SimplePubSub)(nil)

func NewSimplePubSub() *SimplePubSub {
	return &SimplePubSub{topics: make(map[Topic][]chan Message)}
}

func (p *SimplePubSub) Publish(ctx context.Context, topic Topic, msg Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.topics[topic] {
		select {
		case ch <- msg:
		default:
			slog.WarnContext(ctx, "pubsub: subscriber full, message dropped", "topic", topic)
		}
	}
}

func (p *SimplePubSub) Subscribe(topic Topic) <-chan Message {
	ch := make(chan Message, subscriberBufferSize)
	p.mu.Lock()
	p.topics[topic] = append(p.topics[topic], ch)
	p.mu.Unlock()
	return ch
}

// Unsubscribe は購読を解除してチャネルを閉じます。
func (p *SimplePubSub) Unsubscribe(topic Topic, ch <-chan Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	subs := p.topics[topic]
	for i, sub := range subs {
		if sub == ch {
			close(sub)
			p.topics[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(p.topics[topic]) == 0 {
		delete(p.topics, topic)
	}
}
