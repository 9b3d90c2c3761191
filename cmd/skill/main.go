package main

import (
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/skill-protocol/internal/logger"
	"bitbucket.org/sotavant/skill-protocol/internal/skill"
	"bitbucket.org/sotavant/skill-protocol/internal/store/memory"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		panic(err)
	}
	if err := run(cfg); err != nil {
		panic(err)
	}
}

func gzipMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	})
}

func run(cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	s := memory.New()
	for username, userID := range cfg.Recipients {
		s.AddRecipient(username, userID)
	}
	appInstance := newApp(skill.NewAssistant(s))

	logger.Log.Info("Running server", zap.String("address", cfg.RunAddr))

	return http.ListenAndServe(cfg.RunAddr, appInstance.routes())
}
