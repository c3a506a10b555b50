package petstore

import (
	"net/http"
	"net/url"
	"time"
)

// RequestOption tunes a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers http.Header
	query   url.Values
	form    url.Values
	noAuth  bool
	timeout time.Duration
}

// WithHeader sets one header for this call, replacing the session default.
// The name is sent as given.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers[key] = []string{value}
	}
}

// WithHeaders merges headers over the session defaults. An empty map is a
// no-op.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}

// WithoutAuth drops the api_key header from this call.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.noAuth = true
	}
}

// WithRequestTimeout overrides the client timeout for this call.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

// WithQuery appends query parameters to the URL.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, vs := range values {
			o.query[k] = append(o.query[k], vs...)
		}
	}
}

// WithForm sends values as application/x-www-form-urlencoded. It takes
// precedence over a JSON body.
func WithForm(values url.Values) RequestOption {
	return func(o *requestOptions) {
		o.form = values
	}
}
