package notifications

import (
	"context"
	"io"
	"log"

	appconfig "github.com/Lee196444/Text2toss-app/internal/infrastructure/config"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
	"github.com/Lee196444/Text2toss-app/pkg/phone"

	"github.com/google/uuid"
)

// LogNotifier only writes the message to the log. Used in development.
type LogNotifier struct{}

var _ interfaces.INotifier = LogNotifier{}

func (LogNotifier) Send(_ context.Context, msg interfaces.Notification) (interfaces.DeliveryResult, error) {
	id := uuid.NewString()
	log.Printf("[notify][log] id=%s to=%s media=%t body=%q", id, phone.Mask(msg.To), msg.MediaURL != "", msg.Body)
	return interfaces.DeliveryResult{ID: id, Status: "logged"}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the notifier selected by NOTIFIER_DRIVER. The closer releases broker
// connections and is never nil.
func New(app appconfig.App) (interfaces.INotifier, io.Closer, error) {
	switch app.NotifierDriver {
	case appconfig.NotifierTwilio:
		n, err := NewTwilioNotifier(app.TwilioBaseURL, app.TwilioAccountSID, app.TwilioAuthToken, app.TwilioFromNumber)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return n, nopCloser{}, nil
	case appconfig.NotifierAMQP:
		pub, err := NewPublisher(app.RabbitURL, app.NotificationsExchange)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return NewAMQPNotifier(pub), pub, nil
	default:
		return LogNotifier{}, nopCloser{}, nil
	}
}
