package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service/bodymap"
)

// NoopAlerter используется, когда почтовые оповещения выключены
type NoopAlerter struct{}

func (a *NoopAlerter) NotifyHighIntensity(surveyTitle, playerName string, areas map[string]int) {
	log.Printf("[AlertService] noop: высокая интенсивность у %s в опросе %q (%d областей)",
		playerName, surveyTitle, len(areas))
}

// ResendAlerter отправляет оповещения о высокой интенсивности через Resend
type ResendAlerter struct {
	client     *resend.Client
	from       string
	recipients []string
}

// NewResendAlerter создает новый почтовый оповещатель
func NewResendAlerter(apiKey, from string, recipients []string) (*ResendAlerter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("alert from address is required")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("at least one alert recipient is required")
	}
	return &ResendAlerter{
		client:     resend.NewClient(apiKey),
		from:       from,
		recipients: recipients,
	}, nil
}

// NotifyHighIntensity отправляет письмо тренерскому штабу о болевых зонах
// с высокой интенсивностью. Вызывается из горутины после коммита ответа;
// ошибки отправки логируются и не влияют на сам ответ.
func (a *ResendAlerter) NotifyHighIntensity(surveyTitle, playerName string, areas map[string]int) {
	if len(areas) == 0 {
		return
	}
	if playerName == "" {
		playerName = "Unknown player"
	}

	ids := make([]string, 0, len(areas))
	for id := range areas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("- %s: %d/10", bodymap.LabelFor(id), areas[id]))
	}

	params := &resend.SendEmailRequest{
		From:    a.from,
		To:      a.recipients,
		Subject: fmt.Sprintf("High intensity alert: %s (%s)", playerName, surveyTitle),
		Text: fmt.Sprintf(
			"%s reported high soreness in %q:\n\n%s\n",
			playerName, surveyTitle, strings.Join(lines, "\n"),
		),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := a.client.Emails.SendWithContext(ctx, params); err != nil {
		log.Printf("[AlertService] Ошибка отправки оповещения для %s: %v", playerName, err)
		return
	}
	log.Printf("[AlertService] Оповещение отправлено: %s, %d областей", playerName, len(areas))
}
