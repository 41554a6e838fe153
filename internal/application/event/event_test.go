package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

func TestNotify(t *testing.T) {
	p := &recordingPublisher{}
	Notify(context.Background(), p, BookCreated, BookPayload{BookID: 1})
	assert.Equal(t, []string{BookCreated}, p.keys)
}

func TestNotify_ErrorIsSwallowed(t *testing.T) {
	p := &recordingPublisher{err: errors.New("broker down")}
	assert.NotPanics(t, func() {
		Notify(context.Background(), p, InvoiceCreated, InvoicePayload{})
	})
	assert.Len(t, p.keys, 1)
}

func TestNotify_NilAndNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Notify(context.Background(), nil, BookDeleted, nil)
		Notify(context.Background(), NopPublisher{}, BookDeleted, nil)
	})
}
