package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wichananm65/chaosshop-storefront/internal/upstream"
)

// Submitter delivers one order request to the order service.
type Submitter interface {
	Submit(ctx context.Context, req Request, scenario string) Result
}

// HTTPSubmitter POSTs orders to {base}/orders, once, with no idempotency key.
type HTTPSubmitter struct {
	client *upstream.Client
}

func NewHTTPSubmitter(client *upstream.Client) *HTTPSubmitter {
	return &HTTPSubmitter{client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req Request, scenario string) Result {
	var headers map[string]string
	if scenario != "" {
		headers = map[string]string{ScenarioHeader: scenario}
	}

	resp, err := s.client.Do(ctx, upstream.Request{
		Method:  http.MethodPost,
		Path:    "/orders",
		Headers: headers,
		Body:    req,
	})
	if err == nil {
		return Result{OK: true, StatusCode: resp.StatusCode, Body: rawBody(resp.Body)}
	}

	res := Result{Message: failureMessage(nil, err)}
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) && resp != nil {
		res.StatusCode = resp.StatusCode
		res.Body = rawBody(resp.Body)
		res.Message = failureMessage(resp.Body, err)
	}
	return res
}

// failureMessage picks the most specific description available: the
// response's detail field, then the transport error, then a generic text.
func failureMessage(body []byte, err error) string {
	if detail := detailOf(body); detail != "" {
		return detail
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return GenericFailureMessage
}

// detailOf returns the "detail" field of a JSON object body. Falsy values
// (null, false, 0, "") count as absent; non-string values are returned as
// their JSON text.
func detailOf(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	raw, ok := obj["detail"]
	if !ok {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case bool:
		if !d {
			return ""
		}
		return "true"
	case float64:
		if d == 0 {
			return ""
		}
		return strconv.FormatFloat(d, 'f', -1, 64)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	}
}

// rawBody keeps a JSON body verbatim and wraps anything else as a JSON
// string so it can still be shown. Empty bodies yield nil.
func rawBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
