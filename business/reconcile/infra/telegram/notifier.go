// Package telegram delivers viable opportunities to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apperror"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
)

// sendInterval spaces messages out so bursts of viable cards do not trip
// Telegram's flood limits.
const sendInterval = 2 * time.Second

// Notifier sends one message per viable opportunity.
type Notifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	log      logger.LoggerInterface
	interval time.Duration

	mu       sync.Mutex
	lastSent time.Time
}

// NewNotifier authenticates the bot token and verifies API access.
func NewNotifier(token string, chatID int64, log logger.LoggerInterface) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperror.External(apperror.CodeNotifySendFailed, "telegram auth", err)
	}

	me, err := bot.GetMe()
	if err != nil {
		return nil, apperror.External(apperror.CodeNotifySendFailed, "telegram getMe", err)
	}
	log.Info(context.Background(), "telegram notifier ready", "bot", me.UserName, "chat_id", chatID)

	return &Notifier{
		bot:      bot,
		chatID:   chatID,
		log:      log,
		interval: sendInterval,
	}, nil
}

// ReportViable formats and sends one opportunity message.
func (n *Notifier) ReportViable(ctx context.Context, opp domain.Opportunity) error {
	if err := n.throttle(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatMessage(opp))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return apperror.External(apperror.CodeNotifySendFailed, opp.Card.ID, err)
	}
	return nil
}

// throttle blocks until the send interval has passed since the last
// message. The slot is reserved under the lock so concurrent senders
// queue up behind each other.
func (n *Notifier) throttle(ctx context.Context) error {
	n.mu.Lock()
	now := time.Now()
	wait := n.interval - now.Sub(n.lastSent)
	if wait <= 0 {
		// An idle gap does not bank credit for the next burst.
		n.lastSent = now
		n.mu.Unlock()
		return nil
	}
	n.lastSent = now.Add(wait)
	n.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func formatMessage(opp domain.Opportunity) string {
	card := opp.Card
	q := opp.Baseline.Quote
	result := opp.Result

	state := "in stock"
	if result.Potential {
		state = "out of stock"
	}

	text := fmt.Sprintf(
		"<b>%s</b> %s %s %s\n"+
			"Buy: ¥%d at %s (%s, %s)\n"+
			"Market: $%s\n"+
			"Profit: $%s (%s%%)",
		card.Name, card.Set, card.Number, card.Rarity,
		q.PriceJPY, q.Source, opp.Baseline.Grade, state,
		card.MarketUSD().StringFixed(2),
		result.ProfitUSD.StringFixed(2), result.ProfitPercent.StringFixed(1),
	)
	if q.URL != "" {
		text += fmt.Sprintf("\n<a href=%q>listing</a>", q.URL)
	}
	return text
}
