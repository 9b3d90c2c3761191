package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/skill-protocol/internal/logger"
	"bitbucket.org/sotavant/skill-protocol/internal/metrics"
	"bitbucket.org/sotavant/skill-protocol/internal/models"
	"bitbucket.org/sotavant/skill-protocol/internal/skill"
)

// maxBodySize ограничивает тело запроса, в том числе после распаковки gzip.
const maxBodySize = 1 << 20

type app struct {
	handler skill.Handler
}

func newApp(h skill.Handler) *app {
	return &app{handler: h}
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger)

	r.With(gzipMiddleware).Post("/", a.webhook)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if r.Method != http.MethodPost {
		log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	log.Debug("decoding request")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.Debug("cannot read request body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	in, err := models.DecodeInput(body)
	if err != nil {
		log.Debug("cannot decode request JSON body", zap.Error(err))
		metrics.ObserveDecodeError(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	metrics.ObserveTurn(in)

	out, err := a.handler.Handle(ctx, in)
	if err != nil {
		log.Error("cannot handle turn",
			zap.String("action", in.Action),
			zap.String("session_id", in.SessionID),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if out == nil {
		out = models.NewBusinessOutput()
	}
	metrics.ObserveOutput(out)

	w.Header().Set("Content-Type", "application/json")

	// сериализуем ответ сервера
	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		log.Debug("error encoding response", zap.Error(err))
		return
	}
	log.Debug("sending HTTP 200 response")
}
