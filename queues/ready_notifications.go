package queues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSReadyNotifierImpl publishes RequestReadyEvent messages.
type SQSReadyNotifierImpl struct {
	client   SQSAPI
	queueUrl string

	logger logging.Logger
}

func NewSQSReadyNotifierImpl(client SQSAPI, queueUrl string, l logging.Logger) *SQSReadyNotifierImpl {
	return &SQSReadyNotifierImpl{
		client:   client,
		queueUrl: queueUrl,
		logger:   l.With("component", "queues.ready"),
	}
}

func (n *SQSReadyNotifierImpl) NotifyReady(ctx context.Context, evt models.RequestReadyEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode ready event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueUrl),
		MessageBody: aws.String(string(body)),
	}
	// one message per request on FIFO queues
	if strings.HasSuffix(n.queueUrl, ".fifo") {
		input.MessageGroupId = aws.String(evt.RequestId)
		input.MessageDeduplicationId = aws.String(evt.RequestId)
	}

	out, err := n.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("send ready event for %s: %w", evt.RequestId, err)
	}

	n.logger.Debug("ready event published", "request_id", evt.RequestId, "message_id", aws.ToString(out.MessageId))
	return nil
}
