package message

import (
	"testing"
	"time"
)

func TestAppendPreservesOrder(t *testing.T) {
	l := NewLog()

	l.Append(Message{Type: TypeChat, Text: "first", Author: "aaaaAlice"})
	l.Append(Message{Type: TypeChat, Text: "second", Author: "aaaaBob"})
	l.Append(Message{Type: TypeJoin, TextSuffix: JoinSuffix, Author: "aaaaCarol"})

	messages := l.Messages()
	if len(messages) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(messages))
	}
	if messages[0].Text != "first" || messages[1].Text != "second" {
		t.Errorf("order broken: %+v", messages)
	}
	if messages[2].Type != TypeJoin || messages[2].TextSuffix != JoinSuffix {
		t.Errorf("join notice = %+v", messages[2])
	}
}

func TestAppendFillsZeroDate(t *testing.T) {
	l := NewLog()

	before := time.Now()
	l.Append(Message{Type: TypeChat, Text: "hi"})
	after := time.Now()

	got := l.Messages()[0].Date
	if got.Before(before) || got.After(after) {
		t.Errorf("Date = %v, want between %v and %v", got, before, after)
	}
}

func TestAppendKeepsExplicitDate(t *testing.T) {
	l := NewLog()
	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	l.Append(Message{Type: TypeChat, Text: "hi", Date: stamp})

	if got := l.Messages()[0].Date; !got.Equal(stamp) {
		t.Errorf("Date = %v, want %v", got, stamp)
	}
}

func TestAppendBroadcastsFullList(t *testing.T) {
	l := NewLog()

	var last []Message
	sub := l.Subscribe(func(messages []Message) { last = messages })
	defer sub.Cancel()

	l.Append(Message{Type: TypeChat, Text: "one"})
	l.Append(Message{Type: TypeChat, Text: "two"})

	if len(last) != 2 || last[1].Text != "two" {
		t.Errorf("broadcast = %+v, want the full two-entry list", last)
	}
}

func TestClearKeepsWelcome(t *testing.T) {
	l := NewLog()
	l.SetWelcomeMessage("Welcome to the lobby")
	l.Append(Message{Type: TypeChat, Text: "hi"})

	var last []Message
	sub := l.Subscribe(func(messages []Message) { last = messages })
	defer sub.Cancel()

	l.Clear()

	if len(l.Messages()) != 0 {
		t.Error("log not empty after Clear")
	}
	if last == nil || len(last) != 0 {
		t.Errorf("Clear broadcast = %v, want an empty list", last)
	}
	if l.WelcomeMessage() != "Welcome to the lobby" {
		t.Errorf("welcome = %q, should survive Clear", l.WelcomeMessage())
	}
}

func TestMessagesIsACopy(t *testing.T) {
	l := NewLog()
	l.Append(Message{Type: TypeChat, Text: "hi"})

	snapshot := l.Messages()
	snapshot[0].Text = "tampered"

	if l.Messages()[0].Text != "hi" {
		t.Error("mutating a snapshot leaked into the log")
	}
}
