package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/matzehuels/lbcode/pkg/buildinfo"
	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/lbcode"
	"github.com/matzehuels/lbcode/pkg/ldraw"
	"github.com/matzehuels/lbcode/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error: fmt.Sprintf("method %s not allowed", r.Method),
		Code:  "METHOD_NOT_ALLOWED",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found", Code: "NOT_FOUND"})
}

// handleConvertJSON accepts {"fileContent": base64, "fileName": "x.ldr"}
// and answers with the LBCode document in base64.
func (s *Server) handleConvertJSON(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, bodyError(err, "invalid JSON body"))
		return
	}
	if req.FileContent == "" {
		s.writeError(w, lberrors.New(lberrors.ErrCodeInvalidInput, "no file content provided"))
		return
	}
	model, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		s.writeError(w, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "fileContent is not valid base64"))
		return
	}

	res, err := s.convert(r, pipeline.Options{
		Input:    model,
		FileName: req.FileName,
		Strict:   req.Strict,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := convertResponse(res)
	resp.LBCodeBase64 = base64.StdEncoding.EncodeToString(res.Data)
	s.writeConversionHeaders(w, res)
	s.writeJSON(w, http.StatusOK, resp)
}

// handleConvertRaw reads the model as the request body and writes the
// LBCode document as application/octet-stream.
//
// Query parameters: name (an .ldr file name), strict (bool).
func (s *Server) handleConvertRaw(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	strict, err := parseBool(q.Get("strict"))
	if err != nil {
		s.writeError(w, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "strict"))
		return
	}
	name := q.Get("name")

	model, err := s.readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.convert(r, pipeline.Options{
		Input:    model,
		FileName: name,
		Strict:   strict,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := "model.lbcode"
	if name != "" {
		out = strings.TrimSuffix(name, path.Ext(name)) + ".lbcode"
	}
	s.writeConversionHeaders(w, res)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// handleInspect decodes an LBCode document sent as the request body.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	layout, err := lbcode.Decode(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, InspectResponse{Size: len(data), Layout: layout})
}

func (s *Server) convert(r *http.Request, opts pipeline.Options) (*pipeline.Result, error) {
	opts.MaxInputBytes = int(s.maxUploadBytes)
	return s.runner.Convert(r.Context(), opts)
}

// readBody reads the whole decoded request body, enforcing the upload limit
// on both the wire size and the decompressed size.
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	body, err := decodedBody(r, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, bodyError(err, "read request body")
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, lberrors.New(lberrors.ErrCodePayloadTooLarge,
			"model exceeds %d bytes", s.maxUploadBytes)
	}
	return data, nil
}

func bodyError(err error, msg string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return lberrors.New(lberrors.ErrCodePayloadTooLarge, "request body exceeds %d bytes", maxErr.Limit)
	}
	return lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "%s", msg)
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func (s *Server) writeConversionHeaders(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set("X-Conversion-ID", res.ID)
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

// writeError maps err to a status code and an ErrorResponse. Model errors
// carry the offending line when known.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := lberrors.HTTPStatus(err)
	resp := ErrorResponse{
		Error: lberrors.UserMessage(err),
		Code:  string(lberrors.GetCode(err)),
	}
	var le *ldraw.LineError
	if errors.As(err, &le) {
		resp.Line = le.Line
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		resp.Error = "internal error"
		if resp.Code == "" {
			resp.Code = string(lberrors.ErrCodeInternal)
		}
	}
	s.writeJSON(w, status, resp)
}
