// Package lambda serves the status lookup behind an API Gateway proxy
// integration, using the same responder as the HTTP listener.
package lambda

import (
	"context"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"crsc/internal/statuscheck"
	"crsc/pkg/requestcontext"
)

type Responder interface {
	Respond(ctx context.Context, req statuscheck.Request) statuscheck.Response
}

type Adapter struct {
	responder Responder
	clock     func() time.Time
}

type Option func(*Adapter)

// WithClock replaces time.Now as the source of the request instant.
func WithClock(clock func() time.Time) Option {
	return func(a *Adapter) {
		a.clock = clock
	}
}

func NewAdapter(responder Responder, opts ...Option) *Adapter {
	a := &Adapter{responder: responder, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle answers one proxy event. Every outcome, including rejection, is an
// HTTP response; the returned error is always nil.
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = requestcontext.WithRequestID(ctx, requestID)
	ctx = requestcontext.WithClientMetadata(ctx, event.RequestContext.Identity.SourceIP, event.RequestContext.Identity.UserAgent)
	ctx = requestcontext.WithTime(ctx, a.clock())

	resp := a.responder.Respond(ctx, statuscheck.Request{
		Method:        event.HTTPMethod,
		DisclosureRef: event.PathParameters[statuscheck.PathParamDisclosureRef],
		Query:         queryValues(event),
	})

	return events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers: map[string]string{
			"Content-Type": resp.ContentType,
			"X-Request-ID": requestID,
		},
		Body: resp.Body,
	}, nil
}

// queryValues prefers the multi-value map, which keeps repeated keys in order.
func queryValues(event events.APIGatewayProxyRequest) url.Values {
	values := url.Values{}
	if len(event.MultiValueQueryStringParameters) > 0 {
		for key, vs := range event.MultiValueQueryStringParameters {
			values[key] = append([]string(nil), vs...)
		}
		return values
	}
	for key, v := range event.QueryStringParameters {
		values.Set(key, v)
	}
	return values
}
