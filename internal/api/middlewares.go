package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gofrs/uuid/v5"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/pkg/logger"
)

type Middleware struct {
	s Service
}

func NewMiddleware(s Service) *Middleware {
	return &Middleware{s: s}
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.SetRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())
		ctx = logger.SetURL(ctx, r.URL.String())
		ctx = logger.SetMethod(ctx, r.Method)

		slog.InfoContext(ctx, "incoming request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(r.Context(), "panic", "error", err, "stack", string(debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractTokenFromHeader(r)
		if token == "" {
			slog.WarnContext(ctx, "auth: missing bearer token")
			sendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthorized, entity.ErrMsgUnauthorized)

			return
		}

		account, err := m.s.AccountFromToken(ctx, token)
		if err != nil {
			slog.WarnContext(ctx, "auth: session token rejected")
			sendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)

			return
		}

		ctx = logger.SetAccountID(ctx, account.ID.String())
		ctx = entity.SetAccountToContext(ctx, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards the Finance, Reports and Settings surfaces. SUPPORT
// accounts are denied here in addition to the presentation-layer check the
// access level drives.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account, err := entity.AccountFromContext(ctx)
		if err != nil {
			sendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)
			return
		}

		if account.AccessLevel != entity.AccessAdmin {
			slog.WarnContext(ctx, "admin route denied", "access_level", account.AccessLevel)
			sendErr(ctx, w, http.StatusForbidden, entity.ErrForbidden, entity.ErrMsgForbidden)

			return
		}

		next.ServeHTTP(w, r)
	})
}
