package kraken

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"krakenrest/logger"
)

const dispatcherComponent = "kraken_dispatcher"

// Dispatcher sends RequestSpecs and reduces each outcome to a Result. It
// never retries; a caller that wants another attempt must rebuild the request
// so that it carries a fresh nonce.
type Dispatcher struct {
	client *http.Client
	log    *logger.Log
}

// NewDispatcher wraps client. A nil client falls back to a client with the
// default transport and no timeout.
func NewDispatcher(client *http.Client, log *logger.Log) *Dispatcher {
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Dispatcher{client: client, log: log}
}

// Dispatch sends spec on its own goroutine and invokes cb exactly once with
// the outcome. Completion order between concurrent calls is unspecified.
func (d *Dispatcher) Dispatch(ctx context.Context, spec *RequestSpec, cb Callback) {
	go func() {
		res := d.Do(ctx, spec)
		if cb != nil {
			cb(res)
		}
	}()
}

// Do sends spec and blocks until the outcome is known.
func (d *Dispatcher) Do(ctx context.Context, spec *RequestSpec) Result[Response] {
	requestID := uuid.NewString()
	log := d.log.WithComponent(dispatcherComponent).WithFields(logger.Fields{
		"request_id": requestID,
		"method":     spec.Method,
		"visibility": string(spec.Visibility),
	})

	start := time.Now()
	res := d.send(ctx, spec)
	logger.LogPerformanceEntry(log, dispatcherComponent, spec.Method, time.Since(start), nil)

	metricFields := logger.Fields{"method": spec.Method}
	log.LogMetric(dispatcherComponent, "requests", int64(1), "counter", metricFields)

	switch err := res.Err(); {
	case err == nil:
		log.Debug("request succeeded")
	case IsAPIError(err):
		log.LogMetric(dispatcherComponent, "api_errors", int64(1), "counter", logger.Fields{"method": spec.Method})
		log.WithError(err).Warn("exchange rejected request")
	default:
		log.LogMetric(dispatcherComponent, "network_errors", int64(1), "counter", logger.Fields{"method": spec.Method})
		log.WithError(err).Warn("request failed")
	}
	return res
}

func (d *Dispatcher) send(ctx context.Context, spec *RequestSpec) Result[Response] {
	req, err := spec.HTTPRequest(ctx)
	if err != nil {
		return Failure[Response](&NetworkError{Reason: err.Error(), Err: err})
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Failure[Response](&NetworkError{Reason: err.Error(), Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure[Response](&NetworkError{Reason: fmt.Sprintf("failed to read response body: %v", err), Err: err})
	}

	return classify(resp.StatusCode, body)
}

// classify maps a response body onto a Result. A non-empty "error" array wins
// over any "result" that is also present.
func classify(status int, body []byte) Result[Response] {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		if status < 200 || status > 299 {
			return Failure[Response](&NetworkError{Reason: fmt.Sprintf("unexpected status %d", status)})
		}
		return Failure[Response](&NetworkError{Reason: "malformed JSON", Err: err})
	}

	if raw, ok := fields["error"]; ok {
		if msgs := errorMessages(raw); len(msgs) > 0 {
			return Failure[Response](&APIError{Reason: msgs[0], Errors: msgs})
		}
	}

	var result json.RawMessage
	if raw, ok := fields["result"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		result = raw
	}
	return Success(Response{Result: result, Body: fields})
}

// errorMessages extracts the entries of an "error" array. Anything that is not
// an array yields nil; non-string entries are rendered as raw JSON.
func errorMessages(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			msgs = append(msgs, s)
			continue
		}
		msgs = append(msgs, string(item))
	}
	return msgs
}
