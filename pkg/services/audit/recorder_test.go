package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureLogStore struct {
	calls chan int64
	err   error
}

func (c *captureLogStore) Record(_ context.Context, userID int64) error {
	c.calls <- userID
	return c.err
}

func TestRecorder_ReportExported(t *testing.T) {
	t.Run("records the export asynchronously", func(t *testing.T) {
		logs := &captureLogStore{calls: make(chan int64, 1)}
		r := NewRecorder(logs, nil)

		r.ReportExported(context.Background(), 7)

		select {
		case userID := <-logs.calls:
			assert.Equal(t, int64(7), userID)
		case <-time.After(time.Second):
			t.Fatal("report log write never happened")
		}
	})

	t.Run("store failure never reaches the caller", func(t *testing.T) {
		logs := &captureLogStore{calls: make(chan int64, 1), err: errors.New("db down")}
		r := NewRecorder(logs, nil)

		// Must not panic or block.
		r.ReportExported(context.Background(), 7)
		<-logs.calls
	})

	t.Run("nil publisher drops the event silently", func(t *testing.T) {
		var p *Publisher
		err := p.PublishExported(context.Background(), ExportedEvent{UserID: 1})
		assert.NoError(t, err)
	})
}
