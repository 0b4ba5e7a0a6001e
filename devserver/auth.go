package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/httpjson"
	"github.com/damrufest/judgeboard/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const authCookieName = "auth_token"

type sessionClaims struct {
	Role comp.Role `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey string

const ctxUserKey ctxKey = "session_user"

// sessionUser pulls the authenticated user out of the request context,
// or nil for anonymous requests.
func sessionUser(r *http.Request) *comp.User {
	u, _ := r.Context().Value(ctxUserKey).(*comp.User)
	return u
}

// sessionMiddleware validates the auth cookie when present and loads the
// matching account into the request context. Requests without a cookie
// pass through anonymously; per-route handlers decide what anonymity
// means.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return s.jwtKey, nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		user, ok := s.store.userByID(claims.Subject)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	acc, ok := s.store.accountByEmail(req.Email)
	if !ok {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrUserNotFound())
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidCredentials())
		return
	}

	claims := sessionClaims{
		Role: acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	httpjson.WriteSuccessJson(w, map[string]any{"user": acc.User})
}

func (s *Server) whoAmI(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]any{"user": user})
}

// logout clears the auth cookie. There is no server-side session state to
// drop; the JWT simply stops being sent.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Logout successful"})
}
