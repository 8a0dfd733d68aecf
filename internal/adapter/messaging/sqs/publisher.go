// Package sqs publishes domain events to an AWS SQS queue.
package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// EventTypeTransferCompleted is carried in the event_type message attribute.
const EventTypeTransferCompleted = "transfer.completed"

// SendMessageAPI is the part of *sqs.Client the publisher needs.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher implements ports.EventPublisher on top of SQS.
type Publisher struct {
	client   SendMessageAPI
	queueURL string
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a Publisher sending to queueURL.
func NewPublisher(client SendMessageAPI, queueURL string) *Publisher {
	return &Publisher{client: client, queueURL: queueURL}
}

// PublishTransferCompleted sends the event as a JSON message body.
func (p *Publisher) PublishTransferCompleted(ctx context.Context, event *domain.TransferCompleted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventTypeTransferCompleted),
			},
			"source_wallet_id": {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.FormatInt(event.SourceWalletID, 10)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send transfer event to SQS: %w", err)
	}
	return nil
}

// NopPublisher discards events. Used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishTransferCompleted(context.Context, *domain.TransferCompleted) error {
	return nil
}
