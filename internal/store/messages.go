package store

import "github.com/benbjohnson/immutable"

// Message is one entry in the pending message log. Payload is any registered
// component or plain value; consumers match on its dynamic type.
type Message struct {
	Sender  string
	Tick    int64
	Payload any
}

// Envelope is a Message whose payload has been narrowed to a concrete type by
// a typed query.
type Envelope[T any] struct {
	Sender  string
	Tick    int64
	Payload T
}

// SendMessage appends a message to the log, stamped with the current tick.
// Send order across a tick is preserved exactly.
func SendMessage(s Store, sender string, payload any) Store {
	s.messages = s.messages.Append(Message{Sender: sender, Tick: s.tick, Payload: payload})
	return s
}

// Messages returns the pending messages whose payload is of type T, in send
// order. This is a peek: the log is unchanged.
func Messages[T any](s Store) []Envelope[T] {
	var out []Envelope[T]
	itr := s.messages.Iterator()
	for !itr.Done() {
		_, msg := itr.Next()
		if payload, ok := msg.Payload.(T); ok {
			out = append(out, Envelope[T]{Sender: msg.Sender, Tick: msg.Tick, Payload: payload})
		}
	}
	return out
}

// MessagesFrom returns the pending messages sent by one sender, in send
// order. This is a peek: the log is unchanged.
func MessagesFrom(s Store, sender string) []Message {
	var out []Message
	itr := s.messages.Iterator()
	for !itr.Done() {
		_, msg := itr.Next()
		if msg.Sender == sender {
			out = append(out, msg)
		}
	}
	return out
}

// MessageCount reports the total number of pending messages.
func MessageCount(s Store) int {
	return s.messages.Len()
}

// ConsumeMessages is the sole destructive read. It returns the T-typed
// messages in send order together with a new Store whose log has exactly
// those entries removed; non-matching messages keep their relative order.
// The receiver Store is untouched, so consuming from it again returns the
// same matches, while consuming from the returned Store returns none.
func ConsumeMessages[T any](s Store) ([]Envelope[T], Store) {
	var matched []Envelope[T]
	rest := immutable.NewListBuilder[Message]()
	itr := s.messages.Iterator()
	for !itr.Done() {
		_, msg := itr.Next()
		if payload, ok := msg.Payload.(T); ok {
			matched = append(matched, Envelope[T]{Sender: msg.Sender, Tick: msg.Tick, Payload: payload})
			continue
		}
		rest.Append(msg)
	}
	s.messages = rest.List()
	return matched, s
}

// ClearMessages empties the log entirely.
func ClearMessages(s Store) Store {
	s.messages = immutable.NewList[Message]()
	return s
}
