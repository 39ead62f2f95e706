package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
	publicapp "github.com/gomgom-ai/gomgom-services/app/internal/public/application"
	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	kakaoAuthorizeURL = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL     = "https://kauth.kakao.com/oauth/token"
	kakaoProfileURL   = "https://kapi.kakao.com/v2/user/me"
)

// AuthService issues bearer tokens and manages accounts. The token
// shape it mints is exactly what the client-side lifecycle guard
// consumes: HS256 with sub and exp claims.
type AuthService struct {
	users         publicapp.UserRepository
	secret        []byte
	issuer        string
	tokenLifetime time.Duration
	logger        *log.Logger

	kakaoClientID    string
	kakaoRedirectURI string
	kakaoTokenURL    string
	kakaoProfileURL  string
	httpClient       *http.Client
}

// AuthConfig defines AuthService dependencies.
type AuthConfig struct {
	Users         publicapp.UserRepository
	Secret        []byte
	Issuer        string
	TokenLifetime time.Duration
	Logger        *log.Logger

	KakaoClientID    string
	KakaoRedirectURI string
	// KakaoTokenURL / KakaoProfileURL override the Kakao endpoints,
	// mostly for tests.
	KakaoTokenURL   string
	KakaoProfileURL string
	HTTPClient      *http.Client
}

// NewAuthService builds the auth service.
func NewAuthService(cfg AuthConfig) *AuthService {
	lifetime := cfg.TokenLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	tokenURL := cfg.KakaoTokenURL
	if tokenURL == "" {
		tokenURL = kakaoTokenURL
	}
	profileURL := cfg.KakaoProfileURL
	if profileURL == "" {
		profileURL = kakaoProfileURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &AuthService{
		users:            cfg.Users,
		secret:           cfg.Secret,
		issuer:           cfg.Issuer,
		tokenLifetime:    lifetime,
		logger:           cfg.Logger,
		kakaoClientID:    cfg.KakaoClientID,
		kakaoRedirectURI: cfg.KakaoRedirectURI,
		kakaoTokenURL:    tokenURL,
		kakaoProfileURL:  profileURL,
		httpClient:       httpClient,
	}
}

// issueToken mints the bearer credential for user.
func (a *AuthService) issueToken(user *domain.User) (tokenResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, struct {
		jwt.RegisteredClaims
		Email string `json:"email,omitempty"`
		Name  string `json:"name,omitempty"`
	}{RegisteredClaims: claims, Email: user.Email, Name: user.FullName})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return tokenResponse{}, err
	}

	nickname := user.FullName
	if nickname == "" {
		nickname = user.Email
	}
	return tokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(a.tokenLifetime.Seconds()),
		Nickname:    nickname,
	}, nil
}

// loginHandler performs OAuth2-password-form compatible login.
func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			common.WriteDetail(h.logger, w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다")
			return
		}
		email := strings.TrimSpace(r.PostFormValue("username"))
		password := r.PostFormValue("password")

		user, err := h.auth.users.FindByEmail(r.Context(), email)
		if err != nil {
			h.logger.Printf("로그인 조회 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "로그인 처리에 실패했습니다")
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
			common.WriteDetail(h.logger, w, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다")
			return
		}

		token, err := h.auth.issueToken(user)
		if err != nil {
			h.logger.Printf("토큰 발급 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "토큰 발급에 실패했습니다")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, token)
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteDetail(h.logger, w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || len(req.Password) < 8 {
			common.WriteDetail(h.logger, w, http.StatusUnprocessableEntity, "이메일과 8자 이상의 비밀번호가 필요합니다")
			return
		}

		existing, err := h.auth.users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			h.logger.Printf("가입 조회 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "가입 처리에 실패했습니다")
			return
		}
		if existing != nil {
			common.WriteDetail(h.logger, w, http.StatusBadRequest, "이미 등록된 이메일입니다")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "가입 처리에 실패했습니다")
			return
		}

		user := &domain.User{Email: req.Email, FullName: req.FullName, HashedPassword: string(hashed)}
		if err := h.auth.users.Create(r.Context(), user); err != nil {
			h.logger.Printf("가입 저장 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "가입 처리에 실패했습니다")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, userResponse{Email: user.Email, FullName: user.FullName})
	}
}

func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "인증 정보를 확인할 수 없습니다")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, userResponse{Email: user.Email, FullName: user.Name})
	}
}

func (h *Handler) kakaoLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		authURL := fmt.Sprintf("%s?client_id=%s&redirect_uri=%s&response_type=code",
			kakaoAuthorizeURL,
			url.QueryEscape(h.auth.kakaoClientID),
			url.QueryEscape(h.auth.kakaoRedirectURI),
		)
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"auth_url": authURL})
	}
}

func (h *Handler) kakaoCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			common.WriteDetail(h.logger, w, http.StatusBadRequest, "code 값이 필요합니다")
			return
		}

		profile, err := h.auth.exchangeKakaoCode(r.Context(), code)
		if err != nil {
			h.logger.Printf("카카오 로그인 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusBadGateway, "카카오 로그인에 실패했습니다")
			return
		}

		user, err := h.auth.findOrCreateKakaoUser(r.Context(), profile)
		if err != nil {
			h.logger.Printf("카카오 계정 연동 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "카카오 로그인에 실패했습니다")
			return
		}

		token, err := h.auth.issueToken(user)
		if err != nil {
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "토큰 발급에 실패했습니다")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, token)
	}
}

// kakaoProfile is the subset of the Kakao user payload we use.
type kakaoProfile struct {
	ID       string
	Nickname string
}

// exchangeKakaoCode trades the authorization code for an upstream
// access token and loads the profile behind it.
func (a *AuthService) exchangeKakaoCode(ctx context.Context, code string) (kakaoProfile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", a.kakaoClientID)
	form.Set("redirect_uri", a.kakaoRedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.kakaoTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return kakaoProfile{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return kakaoProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return kakaoProfile{}, fmt.Errorf("카카오 토큰 응답 오류 (status=%d)", resp.StatusCode)
	}

	var tokenPayload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenPayload); err != nil {
		return kakaoProfile{}, err
	}

	profileReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.kakaoProfileURL, nil)
	if err != nil {
		return kakaoProfile{}, err
	}
	profileReq.Header.Set("Authorization", "Bearer "+tokenPayload.AccessToken)

	profileResp, err := a.httpClient.Do(profileReq)
	if err != nil {
		return kakaoProfile{}, err
	}
	defer profileResp.Body.Close()
	if profileResp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, profileResp.Body)
		return kakaoProfile{}, fmt.Errorf("카카오 프로필 응답 오류 (status=%d)", profileResp.StatusCode)
	}

	var profilePayload struct {
		ID         json.Number `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(profileResp.Body).Decode(&profilePayload); err != nil {
		return kakaoProfile{}, err
	}

	return kakaoProfile{ID: profilePayload.ID.String(), Nickname: profilePayload.Properties.Nickname}, nil
}

func (a *AuthService) findOrCreateKakaoUser(ctx context.Context, profile kakaoProfile) (*domain.User, error) {
	user, err := a.users.FindByKakaoID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{
		Email:    fmt.Sprintf("kakao_%s@kakao.local", profile.ID),
		FullName: profile.Nickname,
		KakaoID:  profile.ID,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
