package skill

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/skill-protocol/internal/logger"
	"bitbucket.org/sotavant/skill-protocol/internal/models"
	"bitbucket.org/sotavant/skill-protocol/internal/store"
)

const (
	helpSpeech     = "You can ask me to read your messages, or send a message to a friend."
	fallbackSpeech = "Sorry, I didn't get that."
	goodbyeSpeech  = "Goodbye."
	repromptSpeech = "What would you like to do?"

	// TemplateToken задаёт шаблон экрана, который показывается при запуске.
	TemplateToken = "messages_main"
)

// Assistant зачитывает пользователю его сообщения и отправляет сообщения
// другим пользователям.
type Assistant struct {
	store store.Store
	now   func() time.Time
}

var _ Handler = (*Assistant)(nil)

func NewAssistant(s store.Store) *Assistant {
	return &Assistant{store: s, now: time.Now}
}

func (a *Assistant) Handle(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error) {
	action := in.ActionType()
	logger.FromContext(ctx).Debug("handling turn",
		zap.String("action", action.Token()),
		zap.String("session_id", in.SessionID),
	)

	switch action {
	case models.ActionLaunch:
		return a.launch(ctx, in)
	case models.ActionMore:
		return a.readMessage(ctx, in)
	case models.ActionCustomTask:
		return a.sendMessage(ctx, in)
	case models.ActionNext, models.ActionPrevious:
		out := models.NewBusinessOutput()
		out.SetShouldEndSession(false)
		out.AddCommand(models.NewControlMediaCommand(map[string]string{
			"action": strings.ToLower(action.Token()),
		}))
		return out, nil
	case models.ActionHelp:
		out := models.NewBusinessOutput()
		out.SetPromptSpeech(helpSpeech)
		out.SetRepromptSpeech(repromptSpeech)
		out.SetShouldEndSession(false)
		return out, nil
	case models.ActionStop:
		out := models.NewBusinessOutput()
		out.SetPromptSpeech(goodbyeSpeech)
		out.SetShouldEndSession(true)
		return out, nil
	case models.ActionSessionEnd:
		// платформа уже закрыла сессию, говорить нечего
		out := models.NewBusinessOutput()
		out.SetShouldEndSession(true)
		return out, nil
	case models.ActionConnectionsResponse:
		out := models.NewBusinessOutput()
		out.SetPromptSpeech("Welcome back. " + repromptSpeech)
		out.SetShouldEndSession(false)
		return out, nil
	}

	out := models.NewBusinessOutput()
	out.SetPromptSpeech(fallbackSpeech + " " + helpSpeech)
	out.SetRepromptSpeech(repromptSpeech)
	out.SetShouldEndSession(false)
	return out, nil
}

func (a *Assistant) launch(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error) {
	messages, err := a.store.ListMessages(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	// формируем текст с количеством сообщений
	text := "You have no new messages."
	if len(messages) == 1 {
		text = "You have 1 new message."
	} else if len(messages) > 1 {
		text = fmt.Sprintf("You have %d new messages.", len(messages))
	}

	// первый запрос новой сессии
	if in.IsNewSession {
		text = a.greeting(ctx, in) + " " + text
	}

	out := models.NewBusinessOutput()
	out.SetPromptSpeech(text)
	out.SetRepromptSpeech(repromptSpeech)
	out.SetShouldEndSession(false)

	if in.IsDisplayEnabled {
		cmd := models.NewResponseCommand(models.CommandAplRenderTemplate)
		cmd.SetKeys(map[string]string{"token": TemplateToken})
		cmd.SetData(map[string]models.Value{
			"greeting":    models.String(text),
			"count":       models.Int(int64(len(messages))),
			"device_size": models.String(in.DeviceSize),
		})
		out.AddCommand(cmd)
	}
	return out, nil
}

// greeting называет время в часовом поясе из extras.timezone, если он задан и известен.
func (a *Assistant) greeting(ctx context.Context, in models.BusinessInput) string {
	v, ok := in.Extra("timezone")
	if !ok {
		return "Hello!"
	}
	name, ok := v.AsString()
	if !ok || name == "" || name == "Local" {
		return "Hello!"
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		logger.FromContext(ctx).Debug("cannot parse timezone", zap.String("timezone", name), zap.Error(err))
		return "Hello!"
	}
	hour, minute, _ := a.now().In(tz).Clock()
	return fmt.Sprintf("Hello! It is %d:%02d.", hour, minute)
}

func (a *Assistant) readMessage(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error) {
	var msg *store.Message

	if raw, ok := in.Arg("message_id"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			msg, err = a.store.GetMessage(ctx, id)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("get message %d: %w", id, err)
			}
		}
	} else {
		messages, err := a.store.ListMessages(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		if len(messages) > 0 {
			msg = &messages[0]
		}
	}

	out := models.NewBusinessOutput()
	out.SetShouldEndSession(false)
	if msg == nil {
		out.SetPromptSpeech("There are no messages to read.")
		out.SetRepromptSpeech(repromptSpeech)
		return out, nil
	}

	out.SetPromptSpeech(fmt.Sprintf("Message from %s: %s", msg.Sender, msg.Payload))
	out.SetRepromptSpeech(repromptSpeech)
	out.AddCommand(models.NewSessionAttributesCommand(map[string]string{
		"last_message_id": strconv.FormatInt(msg.ID, 10),
	}))
	return out, nil
}

func (a *Assistant) sendMessage(ctx context.Context, in models.BusinessInput) (*models.BusinessOutput, error) {
	out := models.NewBusinessOutput()
	out.SetShouldEndSession(false)

	to, hasTo := in.Arg("to")
	text, hasText := in.Arg("text")
	if !hasTo || !hasText || to == "" || text == "" {
		out.SetPromptSpeech("Who should I send it to, and what should it say?")
		out.SetRepromptSpeech(repromptSpeech)
		return out, nil
	}

	recipient, err := a.store.FindRecipient(ctx, to)
	if errors.Is(err, store.ErrNotFound) {
		out.SetPromptSpeech(fmt.Sprintf("I don't know anyone called %s.", to))
		out.SetRepromptSpeech(repromptSpeech)
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipient: %w", err)
	}

	msg := store.Message{
		Sender:  in.UserID,
		Time:    a.now(),
		Payload: text,
	}
	if err := a.store.SaveMessage(ctx, recipient, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	out.SetPromptSpeech(fmt.Sprintf("Message sent to %s.", to))
	event := models.NewResponseCommand(models.CommandSendEvent)
	event.SetKeys(map[string]string{"event": "message_sent"})
	event.SetRandom(map[string]models.Value{
		"recipient": models.String(recipient),
		"length":    models.Int(int64(len(text))),
	})
	out.AddCommand(event)
	return out, nil
}
