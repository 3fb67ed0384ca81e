package client

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/offgrid-tools/hykpi/pkg/events"
)

var reconnectDelay = 2 * time.Second

// SubscribeEvents streams daemon events until ctx is done. Dropped connections
// are retried. The first failed connection attempt after a working stream is
// logged as a warning, further attempts only at debug level. The returned
// channel is closed once ctx is done.
func (c *Client) SubscribeEvents(ctx context.Context) <-chan events.Event {
	ch := make(chan events.Event, 16)

	go func() {
		defer close(ch)
		failures := 0
		for {
			connected, err := c.streamEvents(ctx, ch)
			if ctx.Err() != nil {
				return
			}

			switch {
			case connected:
				failures = 0
				logrus.WithError(err).Debugf("event stream ended, reconnecting in %s", reconnectDelay)
			case failures == 0:
				failures++
				logrus.WithError(err).Warnf("cannot reach the daemon event stream, retrying every %s", reconnectDelay)
			default:
				failures++
				logrus.WithError(err).WithField("attempt", failures).Debug("event stream still unreachable")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()

	return ch
}

// streamEvents reads one event stream until it ends. connected reports whether
// the daemon accepted the subscription.
func (c *Client) streamEvents(ctx context.Context, ch chan<- events.Event) (connected bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to subscribe to events")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, pkgerrors.Errorf("got %d subscribing to events", resp.StatusCode)
	}

	return true, readEvents(ctx, resp.Body, ch)
}

// readEvents parses a text/event-stream body. Only the event and data fields
// are used.
func readEvents(ctx context.Context, r io.Reader, ch chan<- events.Event) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var name string
	var data []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(data) > 0 {
				ev := events.Event{Name: name, Data: json.RawMessage(strings.Join(data, "\n"))}
				select {
				case ch <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			name, data = "", nil
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}
