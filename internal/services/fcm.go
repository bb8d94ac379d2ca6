package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyMessage rejects a broadcast with nothing to say before any network
// call is made.
var ErrEmptyMessage = errors.New("notification title and body are both empty")

// FCMClient broadcasts notifications to every subscriber of one fixed topic
// using the FCM legacy HTTP API.
type FCMClient struct {
	http      *resty.Client
	serverKey string
	topic     string
}

func NewFCMClient(endpoint, serverKey, topic string) *FCMClient {
	return &FCMClient{
		http: resty.New().
			SetBaseURL(endpoint).
			SetTimeout(15 * time.Second).
			SetHeader("Content-Type", "application/json"),
		serverKey: serverKey,
		topic:     topic,
	}
}

type fcmResponse struct {
	MessageID json.Number `json:"message_id"`
	Error     string      `json:"error"`
}

// SendToTopic broadcasts title/body to the client's topic and returns the
// message identifier FCM assigned. The identifier is opaque; nothing in this
// system interprets it.
func (f *FCMClient) SendToTopic(ctx context.Context, title, body string) (string, error) {
	if title == "" && body == "" {
		return "", ErrEmptyMessage
	}
	if f.serverKey == "" {
		return "", errors.New("FCM server key is not configured")
	}

	payload := map[string]interface{}{
		"to": "/topics/" + f.topic,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}

	var out fcmResponse
	resp, err := f.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+f.serverKey).
		SetBody(payload).
		SetResult(&out).
		Post("")
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fcm send: status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", fmt.Errorf("fcm send: %s", out.Error)
	}
	if out.MessageID.String() == "" {
		return "", errors.New("fcm send: no message id in response")
	}
	return out.MessageID.String(), nil
}
