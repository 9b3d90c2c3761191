// Package skill содержит бизнес-логику, которая отвечает на один ход диалога.
package skill

import (
	"context"

	"bitbucket.org/sotavant/skill-protocol/internal/models"
)

//go:generate mockgen -destination=mock/handler.go -package=mock . Handler

// Handler решает, как ответить на декодированный ход. Вызывающий код
// сериализует возвращённый ответ ровно один раз.
type Handler interface {
	Handle(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error)
}

type HandlerFunc func(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error)

func (f HandlerFunc) Handle(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error) {
	return f(ctx, in)
}
