package digest

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kolinabir/hirelens/internal/models"
)

// TelegramReporter mirrors new jobs and digest summaries to a telegram chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendJob(job models.ExtractedJob) error {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"💰 %s\n"+
			"📍 %s\n"+
			"🕐 %s\n"+
			"🔗 %s",
		job.JobTitle,
		orNA(job.Company),
		orNA(job.Salary),
		orNA(job.Location),
		orNA(job.EmploymentType),
		orNA(job.SourceURL),
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendSummary(newJobs, subscribers int) error {
	return t.SendMessage(fmt.Sprintf("📬 Digest sent: %d new jobs to %d subscribers.", newJobs, subscribers))
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>HireLens Error</b>:\n%v", errReq))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
