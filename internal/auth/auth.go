package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
	repo "Coil/internal/repo"
	logx "Coil/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	cookieName  = "session_token"
	tokenTTL    = 30 * 24 * time.Hour
	minPassword = 6
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"
)

type User struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

// UserFromContext returns the user put there by AuthMiddleware.
func UserFromContext(ctx context.Context) (User, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	if !ok || id == 0 {
		return User{}, false
	}
	login, _ := ctx.Value(userLoginKey).(string)
	return User{ID: id, Login: login}, true
}

type Authenv struct {
	JWTkey []byte
	Repo   repo.Repository
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type Registerrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !i.getLimiter(ip).Allow() {
			errx.Write(w, r, errx.New(nil, http.StatusTooManyRequests, i18n.T(i18n.FromRequest(r), i18n.KeyTooManyRequests)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (env *Authenv) HashPassword(password string) (string, error) {
	cost := env.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func (env *Authenv) parse(tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	})
	if err != nil {
		return User{}, err
	}
	if !token.Valid {
		return User{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, jwt.ErrTokenInvalidClaims
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID == 0 {
		return User{}, jwt.ErrTokenInvalidClaims
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return User{}, jwt.ErrTokenInvalidClaims
	}
	return User{ID: int(userID), Login: login}, nil
}

// AuthMiddleware requires a valid session cookie and answers 401 otherwise.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unauthorized := func() {
			errx.Write(w, r, errx.New(nil, http.StatusUnauthorized, i18n.T(i18n.FromRequest(r), i18n.KeyUnauthorized)))
		}
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			unauthorized()
			return
		}
		user, err := env.parse(cookie.Value)
		if err != nil {
			logx.Debug().Err(err).Msg("rejected session token")
			unauthorized()
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		ctx = context.WithValue(ctx, userLoginKey, user.Login)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (env *Authenv) addCookie(w http.ResponseWriter, userID int, login string) error {
	expiration := time.Now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     expiration.Unix(),
	})
	tokenString, err := token.SignedString(env.JWTkey)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tokenString,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var req Registerrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyCredentials))
		return
	}
	if len(req.Password) < minPassword {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyShortPassword))
		return
	}

	hashedPassword, err := env.HashPassword(req.Password)
	if err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if errors.Is(err, repo.ErrUserExists) {
		errx.Write(w, r, errx.New(err, http.StatusConflict, i18n.T(tag, i18n.KeyUserExists)))
		return
	}
	if err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}

	if err := env.addCookie(w, id, req.Login); err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}
	logx.Info().Int("user_id", id).Str("login", req.Login).Msg("user registered")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(User{ID: id, Login: req.Login})
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var req Loginrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyCredentials))
		return
	}

	badLogin := errx.New(nil, http.StatusUnauthorized, i18n.T(tag, i18n.KeyBadLogin))
	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrUserNotFound) {
		errx.Write(w, r, badLogin)
		return
	}
	if err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		errx.Write(w, r, badLogin)
		return
	}
	if err := env.addCookie(w, id, req.Login); err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}
	errx.WriteJSON(w, User{ID: id, Login: req.Login})
}

func (env *Authenv) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		errx.Write(w, r, errx.New(nil, http.StatusUnauthorized, i18n.T(i18n.FromRequest(r), i18n.KeyUnauthorized)))
		return
	}
	errx.WriteJSON(w, user)
}
