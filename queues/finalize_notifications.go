package queues

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Finalizer completes a Request a downstream consumer is done with.
type Finalizer interface {
	FinalizeRequest(ctx context.Context, requestId string, movedFiles []int) error
}

// FinalizeReceiverImpl consumes RequestFinalizedEvent messages.
type FinalizeReceiverImpl struct {
	client    SQSAPI
	finalizer Finalizer
	queueUrl  string

	waitTime     int32
	errorBackoff time.Duration

	logger logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFinalizeReceiverImpl(
	parent context.Context,
	client SQSAPI,
	finalizer Finalizer,
	queueUrl string,
	l logging.Logger,
) *FinalizeReceiverImpl {

	ctx, cancel := context.WithCancel(parent)

	return &FinalizeReceiverImpl{
		client:       client,
		finalizer:    finalizer,
		queueUrl:     queueUrl,
		waitTime:     20, // long poll
		errorBackoff: time.Second,
		logger:       l.With("component", "queues.finalize"),
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (r *FinalizeReceiverImpl) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_ = r.pollLoop()
	}()
}

func (r *FinalizeReceiverImpl) pollLoop() error {
	for {
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		default:
		}

		out, err := r.client.ReceiveMessage(r.ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(r.queueUrl),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     r.waitTime,
			VisibilityTimeout:   30,
		})
		if err != nil {
			if r.ctx.Err() != nil {
				return r.ctx.Err()
			}
			r.logger.Warn("failed to receive messages", "error", err)
			select {
			case <-time.After(r.errorBackoff):
			case <-r.ctx.Done():
				return r.ctx.Err()
			}
			continue
		}

		for _, msg := range out.Messages {
			r.handleMessage(r.ctx, msg)
		}
	}
}

func (r *FinalizeReceiverImpl) deleteMessage(ctx context.Context, msg types.Message) {
	_, err := r.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(r.queueUrl),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		r.logger.Warn("failed to delete message", "message_id", aws.ToString(msg.MessageId), "error", err)
	}
}

func (r *FinalizeReceiverImpl) handleMessage(ctx context.Context, msg types.Message) {
	if msg.Body == nil {
		r.deleteMessage(ctx, msg)
		return
	}

	var evt models.RequestFinalizedEvent
	if err := json.Unmarshal([]byte(*msg.Body), &evt); err != nil || evt.RequestId == "" {
		// poison message
		r.logger.Warn("dropping malformed finalize message", "message_id", aws.ToString(msg.MessageId))
		r.deleteMessage(ctx, msg)
		return
	}

	if err := r.finalizer.FinalizeRequest(ctx, evt.RequestId, evt.MovedFiles); err != nil {
		r.logger.Error("failed to finalize request", "request_id", evt.RequestId, "error", err)
		return // redelivered after visibility timeout
	}

	r.deleteMessage(ctx, msg)
}

func (r *FinalizeReceiverImpl) Shutdown(ctx context.Context) error {
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
