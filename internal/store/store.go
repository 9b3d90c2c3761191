package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, если получатель или сообщение не найдены.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -destination=mock/store.go -package=mock . Store

// Store хранит сообщения, которые пользователи оставляют друг другу через навык.
type Store interface {
	// FindRecipient возвращает внутренний идентификатор пользователя по его имени.
	FindRecipient(ctx context.Context, username string) (userID string, err error)
	// ListMessages возвращает все непрослушанные сообщения для пользователя.
	ListMessages(ctx context.Context, userID string) ([]Message, error)
	// GetMessage возвращает сообщение по идентификатору.
	GetMessage(ctx context.Context, id int64) (*Message, error)
	// SaveMessage сохраняет новое сообщение для пользователя.
	SaveMessage(ctx context.Context, userID string, msg Message) error
}

// Message описывает одно сообщение.
type Message struct {
	ID      int64
	Sender  string
	Time    time.Time
	Payload string
}
