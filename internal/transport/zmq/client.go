package zmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/pkg/errors"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
)

// DefaultTimeout bounds a single request/reply round trip.
const DefaultTimeout = 5 * time.Second

// wireRequest is the JSON shape of a request on the wire.
type wireRequest struct {
	Text       string `json:"text"`
	FormatType string `json:"format_type"`
}

// Client sends requests to a Server. Each call uses a fresh REQ socket, so
// a failed round trip never leaves the client stuck mid-exchange.
type Client struct {
	endpoint string
	timeout  time.Duration
}

// NewClient creates a Client for endpoint, e.g. "tcp://localhost:5555".
// A non-positive timeout selects DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{endpoint: endpoint, timeout: timeout}
}

// Format sends req and decodes the reply.
func (c *Client) Format(ctx context.Context, req domain.FormatRequest) (domain.FormatResult, error) {
	payload, err := json.Marshal(wireRequest{Text: req.Text, FormatType: req.FormatType})
	if err != nil {
		return domain.FormatResult{}, errors.Wrap(err, "encode request")
	}

	body, err := c.Send(ctx, payload)
	if err != nil {
		return domain.FormatResult{}, err
	}

	var result domain.FormatResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.FormatResult{}, errors.Wrap(err, "decode reply")
	}
	return result, nil
}

// Send performs one raw request/reply exchange.
func (c *Client) Send(ctx context.Context, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	socket := zmq4.NewReq(ctx)
	defer socket.Close()

	if err := socket.Dial(c.endpoint); err != nil {
		return nil, errors.Wrapf(err, "dial %s", c.endpoint)
	}
	if err := socket.Send(zmq4.NewMsg(payload)); err != nil {
		return nil, errors.Wrap(err, "send request")
	}

	msg, err := socket.Recv()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "wait for reply")
		}
		return nil, errors.Wrap(err, "receive reply")
	}
	return msg.Bytes(), nil
}
