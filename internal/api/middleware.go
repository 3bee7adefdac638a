package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/observability"
)

// requestIDHeader copies the request ID to the response header.
func (s *Server) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests logs every request at debug level and reports it to the
// HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)

		level := log.DebugLevel
		if status >= http.StatusInternalServerError {
			level = log.ErrorLevel
		}
		s.logger.Log(level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", elapsed)
	})
}

// limitBody caps the request body at n bytes as sent on the wire.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

// decodedBody returns the request body with any Content-Encoding removed.
// The decompressed stream is capped at limit+1 bytes so callers can
// detect oversized models.
func decodedBody(r *http.Request, limit int64) (io.ReadCloser, error) {
	enc := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
	switch enc {
	case "", "identity":
		return r.Body, nil
	case "gzip":
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "read gzip body")
		}
		return limitedReadCloser{io.LimitReader(zr, limit+1), zr}, nil
	case "zstd":
		zr, err := zstd.NewReader(r.Body)
		if err != nil {
			return nil, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "read zstd body")
		}
		rc := zr.IOReadCloser()
		return limitedReadCloser{io.LimitReader(rc, limit+1), rc}, nil
	default:
		return nil, lberrors.New(lberrors.ErrCodeInvalidInput, "unsupported Content-Encoding %q", enc)
	}
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}
