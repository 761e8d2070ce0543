package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"jark/internal/domain/entity"
)

const maxBodyBytes = 100 << 10

// engineRoute parameterises the single request pipeline shared by every
// engine endpoint.
type engineRoute[R any] struct {
	engine  entity.Engine
	failure string
	key     string
	run     func(context.Context, R) (entity.GenerationResult, error)
	value   func(entity.GenerationResult) string
}

func serveEngine[R any](h *GenerationHandler, route engineRoute[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
				return
			}
			h.logger.Error("read request body failed", "engine", route.engine, "err", err)
			writeError(w, http.StatusBadRequest, errors.New("bad request body"))
			return
		}

		// Only non-JSON bodies are rejected. Any other JSON value than an
		// object counts as {}, and absent fields stay empty.
		var req R
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 {
			if !json.Valid(trimmed) {
				h.logger.Warn("request body is not JSON", "engine", route.engine)
				writeError(w, http.StatusBadRequest, errors.New("bad request body"))
				return
			}
			if trimmed[0] == '{' {
				if err := json.Unmarshal(trimmed, &req); err != nil {
					h.logger.Warn("decode request body failed", "engine", route.engine, "err", err)
					writeError(w, http.StatusBadRequest, errors.New("bad request body"))
					return
				}
			}
		}

		h.logger.Info("generation request", "engine", route.engine, "body", string(body))

		// The upstream call outlives a disconnected client.
		ctx := context.WithoutCancel(r.Context())

		res, err := route.run(ctx, req)
		if res.ID != "" {
			w.Header().Set("X-Request-ID", res.ID)
		}
		if err != nil {
			h.logger.Error("generation failed",
				"engine", route.engine,
				"generation_id", res.ID,
				"upstream", entity.IsUpstreamError(err),
				"err", err,
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": route.failure})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{route.key: route.value(res)})
	}
}
