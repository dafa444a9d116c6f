package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/models"
)

type mockSQSAPI struct {
	mock.Mock
}

func (m *mockSQSAPI) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *sqs.SendMessageOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sqs.SendMessageOutput)
	}
	return r0, ret.Error(1)
}

func TestPublishTransactionEvent(t *testing.T) {
	ev := &TransactionEvent{
		Transaction:          &models.Transaction{Id: "tx1", Type: models.TypeTransfer, Amount: 10_000, Fee: 250},
		SenderBalanceAfter:   39_750,
		ReceiverBalanceAfter: 10_000,
	}

	t.Run("Sends Event To Queue", func(t *testing.T) {
		mockClient := new(mockSQSAPI)
		var sentBody string
		mockClient.On("SendMessage", mock.Anything, mock.Anything).Once().
			Run(func(args mock.Arguments) {
				sentBody = *args.Get(1).(*sqs.SendMessageInput).MessageBody
			}).
			Return(&sqs.SendMessageOutput{}, nil)

		p := NewSQSPublisher(mockClient, "https://sqs.example/queue")
		err := p.PublishTransactionEvent(context.Background(), ev)

		assert.NoError(t, err)
		var decoded TransactionEvent
		assert.NoError(t, json.Unmarshal([]byte(sentBody), &decoded))
		assert.Equal(t, "tx1", decoded.Transaction.Id)
		assert.Equal(t, int64(39_750), decoded.SenderBalanceAfter)
		mockClient.AssertExpectations(t)
	})

	t.Run("Send Failure Propagates", func(t *testing.T) {
		mockClient := new(mockSQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.Anything).Once().Return(nil, errors.New("queue unavailable"))

		p := NewSQSPublisher(mockClient, "https://sqs.example/queue")
		err := p.PublishTransactionEvent(context.Background(), ev)

		assert.Error(t, err)
	})
}
