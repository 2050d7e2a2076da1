package http

import "net/http"

// headerTransport sets fixed headers on every outbound request, without
// touching the caller's request.
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, values := range t.headers {
		reqCopy.Header.Del(key)
		for _, v := range values {
			reqCopy.Header.Add(key, v)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

func withHeaders(headers http.Header) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}

// WithAuthToken sends the token as a bearer Authorization header. An empty
// token adds nothing.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return withHeaders(http.Header{"Authorization": {"Bearer " + token}})
}

// WithUserAgent sets the User-Agent of every request.
func WithUserAgent(userAgent string) HttpOpts {
	return withHeaders(http.Header{"User-Agent": {userAgent}})
}
