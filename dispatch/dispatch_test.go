package dispatch

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLRoundTrip(t *testing.T) {
	t.Parallel()
	messages := []string{
		"Olá, mundo",
		"*1. Nome da Empresa:*\nPadaria Sol & Cia",
		"Cores: azul #1, 100% branco + dourado?",
		"São Paulo - SP\n\nÁçúcar 🍞",
		"a=b&c=d",
		"",
	}
	for _, msg := range messages {
		u, err := BuildURL(DefaultDestination, msg)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(u, "https://wa.me/5511936200509?text="), u)

		parsed, err := url.Parse(u)
		require.NoError(t, err)
		assert.Equal(t, msg, parsed.Query().Get("text"), "round trip of %q", msg)
		assert.NotContains(t, strings.TrimPrefix(u, "https://"), " ")
	}
}

func TestEncodeComponent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a%20b", EncodeComponent("a b"))
	assert.Equal(t, "a%2Bb", EncodeComponent("a+b"))
	assert.Equal(t, "%0A", EncodeComponent("\n"))
	assert.Equal(t, "%26%23%3D%3F", EncodeComponent("&#=?"))
	assert.Equal(t, "%C3%A9", EncodeComponent("é"))
	assert.Equal(t, "-_.~", EncodeComponent("-_.~"))
}

func TestLink(t *testing.T) {
	t.Parallel()
	_, err := NewLink("  ").URL("oi")
	assert.ErrorIs(t, err, ErrNoDestination)

	u, err := Link{BaseURL: "https://api.whatsapp.com/send", Destination: "5511"}.URL("oi")
	require.NoError(t, err)
	assert.Equal(t, "https://api.whatsapp.com/send/5511?text=oi", u)

	u, err = Link{Destination: "5511"}.URL("oi")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511?text=oi", u)
}

func TestBrowserSink(t *testing.T) {
	t.Parallel()
	var opened []string
	sink := NewBrowserSink(NewLink("5511"), nil)
	sink.Open = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	require.NoError(t, sink.Dispatch(context.Background(), "oi tudo"))
	assert.Equal(t, []string{"https://wa.me/5511?text=oi%20tudo"}, opened)

	sink.Open = func(string) error { return errors.New("no display") }
	assert.Error(t, sink.Dispatch(context.Background(), "oi"))
}

func TestWriterSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	sink := &WriterSink{Link: NewLink("5511"), W: &buf}
	require.NoError(t, sink.Dispatch(context.Background(), "a b"))
	assert.Equal(t, "https://wa.me/5511?text=a%20b\n", buf.String())
}

func TestCaptureSink(t *testing.T) {
	t.Parallel()
	sink := &CaptureSink{Link: NewLink("5511")}
	assert.ErrorIs(t, sink.Dispatch(context.Background(), "oi"), ErrNoCapture)

	ctx, capture := WithCapture(context.Background())
	assert.Empty(t, capture.URL())
	require.NoError(t, sink.Dispatch(ctx, "oi"))
	assert.Equal(t, "https://wa.me/5511?text=oi", capture.URL())
}

func TestRecorderConcurrent(t *testing.T) {
	t.Parallel()
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Dispatch(context.Background(), "m")
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Messages(), 20)

	var sf Sink = SinkFunc(func(ctx context.Context, message string) error { return nil })
	assert.NoError(t, sf.Dispatch(context.Background(), "x"))
}
