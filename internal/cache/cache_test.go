package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestConnectEmptyURL(t *testing.T) {
	assert.Nil(t, Connect("", discardLogger()))
}

func TestConnectInvalidURL(t *testing.T) {
	assert.Nil(t, Connect("not a url", discardLogger()))
	assert.Nil(t, Connect("http://localhost:6379", discardLogger()))
}

func TestConnectValidURL(t *testing.T) {
	// ParseURL succeeds without dialing, so a client comes back even when
	// nothing listens there.
	assert.NotNil(t, Connect("redis://localhost:6399/0", discardLogger()))
}

// With no server configured every operation degrades to a miss / no-op.
func TestNilClientDegrades(t *testing.T) {
	c := New(nil, "leaderboard", discardLogger())
	ctx := context.Background()

	assert.False(t, c.Available())

	c.Set(ctx, "ccis", []string{"a", "b"}, time.Minute)

	var dest []string
	assert.False(t, c.Get(ctx, "ccis", &dest))
	assert.Nil(t, dest)

	c.Delete(ctx, "ccis")
}

func TestKeyNamespacing(t *testing.T) {
	a := New(nil, "leaderboard", discardLogger())
	b := New(nil, "elections", discardLogger())

	assert.Equal(t, "leaderboard:ccis", a.key("ccis"))
	assert.Equal(t, "elections:ccis", b.key("ccis"))
}
