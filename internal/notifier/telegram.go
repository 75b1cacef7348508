// Package notifier delivers vacancy notifications to subscribers through the
// telegram bot API.
package notifier

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

type messageSender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

type TelegramNotifier struct {
	api messageSender
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return &TelegramNotifier{api: api}, nil
}

func (n *TelegramNotifier) SendVacancy(_ context.Context, userID int64, vacancy models.Vacancy, score int) error {

	msg := botApi.NewMessage(userID, FormatVacancy(vacancy, score))
	msg.ParseMode = botApi.ModeHTML
	msg.DisableWebPagePreview = true

	_, err := n.api.Send(msg)
	return err
}
