package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле.
// Снаружи причина не различается, чтобы не подсказывать перебор имён.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается при просроченном или повреждённом токене.
var ErrInvalidToken = errors.New("invalid token")

const defaultTokenTTL = 24 * time.Hour

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Service описывает аутентификацию пользователей магазина.
type Service interface {
	Register(user domain.User, password string) (domain.User, error)
	Authenticate(userName, password string) (string, error)
	Verify(tokenString string) (*Claims, error)
	HashPassword(password string) (string, error)
}

type service struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *log.Entry
}

// NewService создаёт сервис аутентификации поверх репозитория пользователей.
func NewService(users domain.UserRepository, secret string, tokenTTL time.Duration, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "auth")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register хэширует пароль и создаёт пользователя.
func (s *service) Register(user domain.User, password string) (domain.User, error) {
	if user.UserName == "" {
		return domain.User{}, fmt.Errorf("register: %w", ErrInvalidCredentials)
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("register: %w", ErrInvalidCredentials)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = hash

	created, err := s.users.Create(user)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.WithFields(log.Fields{
		"user_id":  created.ID,
		"username": created.UserName,
	}).Info("user registered")

	return created, nil
}

// Authenticate проверяет пароль и выдаёт подписанный токен доступа.
func (s *service) Authenticate(userName, password string) (string, error) {
	user, err := s.users.GetByUserName(userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.UserName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("user authenticated")

	return signed, nil
}

// Verify разбирает токен и возвращает его полезную нагрузку.
func (s *service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword возвращает bcrypt-хэш пароля со стандартной стоимостью.
func (s *service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

var _ Service = (*service)(nil)
