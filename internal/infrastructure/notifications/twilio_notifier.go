package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
	"github.com/Lee196444/Text2toss-app/pkg/phone"

	"github.com/go-resty/resty/v2"
)

var ErrMissingTwilioCredentials = errors.New("missing TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN or TWILIO_FROM_NUMBER")

const defaultTwilioBaseURL = "https://api.twilio.com"

type twilioMessage struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type twilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// TwilioNotifier sends SMS/MMS through the Twilio Messages REST API.
type TwilioNotifier struct {
	client     *resty.Client
	accountSID string
	from       string
}

var _ interfaces.INotifier = (*TwilioNotifier)(nil)

func NewTwilioNotifier(baseURL, accountSID, authToken, from string) (*TwilioNotifier, error) {
	if accountSID == "" || authToken == "" || from == "" {
		log.Printf("[notify][twilio] missing credentials")
		return nil, ErrMissingTwilioCredentials
	}
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(accountSID, authToken).
		SetTimeout(15 * time.Second)
	log.Printf("[notify][twilio] client initialized from=%s", phone.Mask(from))
	return &TwilioNotifier{client: client, accountSID: accountSID, from: from}, nil
}

func (n *TwilioNotifier) Send(ctx context.Context, msg interfaces.Notification) (interfaces.DeliveryResult, error) {
	form := map[string]string{
		"To":   msg.To,
		"From": n.from,
		"Body": msg.Body,
	}
	if msg.MediaURL != "" {
		form["MediaUrl"] = msg.MediaURL
	}

	var out twilioMessage
	var apiErr twilioError
	resp, err := n.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&apiErr).
		SetPathParam("sid", n.accountSID).
		Post("/2010-04-01/Accounts/{sid}/Messages.json")
	if err != nil {
		log.Printf("[notify][twilio] request failed to=%s err=%v", phone.Mask(msg.To), err)
		return interfaces.DeliveryResult{}, err
	}
	if resp.IsError() {
		log.Printf("[notify][twilio] rejected to=%s status=%d code=%d", phone.Mask(msg.To), resp.StatusCode(), apiErr.Code)
		return interfaces.DeliveryResult{}, fmt.Errorf("twilio: status %d code %d: %s", resp.StatusCode(), apiErr.Code, apiErr.Message)
	}
	if out.ErrorCode != nil {
		return interfaces.DeliveryResult{}, fmt.Errorf("twilio: message %s failed code %d: %s", out.SID, *out.ErrorCode, out.ErrorMessage)
	}
	return interfaces.DeliveryResult{ID: out.SID, Status: out.Status}, nil
}
