package client

import (
	"context"
	"fmt"
	"sync"
)

// State - состояние пользовательской сессии.
type State int

// Состояния сессии. Начальное состояние - StateLoading, пока Resolve
// не проверит сохраненный токен.
const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

// String возвращает текстовое представление состояния.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Провайдеры внешней авторизации.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Event - событие изменения состояния сессии.
type Event struct {
	State   State
	Profile *Profile
}

// SessionManager отслеживает состояние сессии и уведомляет подписчиков
// о его изменениях. Безопасен для конкурентного использования; при
// конкурентных операциях побеждает последняя завершившаяся.
type SessionManager struct {
	client *Client

	mu      sync.RWMutex
	state   State
	profile *Profile

	resolveOnce sync.Once

	subsMu sync.Mutex
	nextID int
	subs   map[int]func(Event)

	onSignedIn func(*Profile)
}

// SessionOption настраивает SessionManager.
type SessionOption func(*SessionManager)

// WithSignedInHook задает функцию, вызываемую после успешного входа.
func WithSignedInHook(hook func(*Profile)) SessionOption {
	return func(m *SessionManager) {
		m.onSignedIn = hook
	}
}

// NewSessionManager создает менеджер сессии поверх клиента API.
func NewSessionManager(client *Client, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		client: client,
		state:  StateLoading,
		subs:   make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State возвращает текущее состояние сессии.
func (m *SessionManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Profile возвращает профиль аутентифицированного пользователя или nil.
func (m *SessionManager) Profile() *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// Subscribe регистрирует подписчика на события сессии и возвращает
// функцию отписки. Подписчик вызывается синхронно при каждом переходе.
func (m *SessionManager) Subscribe(fn func(Event)) func() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		delete(m.subs, id)
	}
}

// Resolve выполняет однократную стартовую проверку сессии: при наличии
// сохраненного токена запрашивает профиль. Повторные вызовы возвращают
// текущее состояние без обращения к серверу.
func (m *SessionManager) Resolve(ctx context.Context) State {
	m.resolveOnce.Do(func() {
		if m.client.AccessToken() == "" {
			m.transition(StateUnauthenticated, nil)
			return
		}

		profile, err := m.client.GetProfile(ctx)
		if err != nil {
			m.transition(StateUnauthenticated, nil)
			return
		}

		m.transition(StateAuthenticated, profile)
	})

	return m.State()
}

// SignIn выполняет вход по email и паролю.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*Profile, error) {
	if _, err := m.client.SignIn(ctx, email, password); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	return m.completeSignIn(ctx)
}

// SignUp регистрирует нового пользователя и входит под ним.
func (m *SessionManager) SignUp(ctx context.Context, email, username, password string) (*Profile, error) {
	if _, err := m.client.SignUp(ctx, email, username, password); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return m.completeSignIn(ctx)
}

// SignInWithGoogle обменивает код авторизации Google на сессию.
func (m *SessionManager) SignInWithGoogle(ctx context.Context, code string) (*Profile, error) {
	return m.signInWithOAuth(ctx, ProviderGoogle, code)
}

// SignInWithGitHub обменивает код авторизации GitHub на сессию.
func (m *SessionManager) SignInWithGitHub(ctx context.Context, code string) (*Profile, error) {
	return m.signInWithOAuth(ctx, ProviderGitHub, code)
}

func (m *SessionManager) signInWithOAuth(ctx context.Context, provider, code string) (*Profile, error) {
	if _, err := m.client.ExchangeOAuthCode(ctx, provider, code); err != nil {
		return nil, fmt.Errorf("oauth sign in: %w", err)
	}

	return m.completeSignIn(ctx)
}

// SignOut завершает сессию. Локальное состояние сбрасывается даже при
// ошибке отзыва токена на сервере.
func (m *SessionManager) SignOut(ctx context.Context) error {
	err := m.client.SignOut(ctx)

	m.transition(StateUnauthenticated, nil)

	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (m *SessionManager) completeSignIn(ctx context.Context) (*Profile, error) {
	profile, err := m.client.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching profile after sign in: %w", err)
	}

	m.transition(StateAuthenticated, profile)

	if m.onSignedIn != nil {
		m.onSignedIn(profile)
	}

	return profile, nil
}

func (m *SessionManager) transition(state State, profile *Profile) {
	m.mu.Lock()
	m.state = state
	m.profile = profile
	m.mu.Unlock()

	event := Event{State: state, Profile: profile}

	m.subsMu.Lock()
	subs := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}
