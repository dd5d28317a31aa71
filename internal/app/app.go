package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/storefront-client/internal/config"
	"github.com/samvad-hq/storefront-client/internal/domain"
	"github.com/samvad-hq/storefront-client/internal/logger"
	"github.com/samvad-hq/storefront-client/internal/storage"
	"github.com/samvad-hq/storefront-client/pkg/api"
	"github.com/samvad-hq/storefront-client/pkg/httpclient"
	"github.com/samvad-hq/storefront-client/pkg/publishers"
)

const defaultPublishTimeout = 15 * time.Second

// ErrNoAccessToken is returned when a login response carries no token.
var ErrNoAccessToken = errors.New("login response did not include an access token")

// App represents the storefront client runtime. It owns the token store, the API client,
// and the activity publishers, and persists the session token across invocations.
type App struct {
	cfg    *config.Config
	log    logger.Logger
	store  storage.Store
	client *api.Client
	fanout *publishers.Fanout
}

// Session describes the locally stored login state.
type Session struct {
	APIURL   string `json:"api_url" yaml:"api_url"`
	LoggedIn bool   `json:"logged_in" yaml:"logged_in"`
}

// New builds an App from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.NewStore(cfg.TokenStore, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init token store: %w", err)
	}
	log.DebugObj("token store initialized", "storage_config", map[string]any{
		"type": cfg.TokenStore,
		"path": cfg.BBoltPath,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	client := api.New(cfg.APIURL,
		api.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout, restyLogger(log))),
		api.WithTokenStore(store),
		api.WithLogger(log),
		api.WithDevelopment(cfg.IsDevelopment()),
	)

	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: client,
		fanout: fanout,
	}, nil
}

// buildFanout loads the optional publishers file; no file means no sinks.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, p := range enabled {
		summaries = append(summaries, map[string]string{"id": p.ID, "type": p.Type})
	}
	log.DebugObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// restyLogger routes resty's own warnings through zap when available.
func restyLogger(log logger.Logger) resty.Logger {
	if z, ok := log.(*logger.ZapLogger); ok {
		return z.Sugar()
	}
	return nil
}

// Client exposes the underlying API client.
func (a *App) Client() *api.Client { return a.client }

// Close releases the token store and publisher connections, logging any errors encountered.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.fanout != nil {
		if err := a.fanout.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close token store: %w", err))
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		a.log.ErrorObj("app close failed", "error", err)
	}
	return err
}

// publish emits an activity event, bounded by the request timeout. Delivery failures
// are logged, never returned.
func (a *App) publish(ctx context.Context, action, resourceID string, payload any) {
	if a.fanout.Size() == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, a.publishTimeout())
	defer cancel()

	evt := publishers.NewEvent(action, resourceID, a.client.BaseURL(), payload)
	delivered, err := a.fanout.Publish(ctx, evt)
	if err != nil {
		a.log.WarnObj("activity event delivery failed", "publish_error", map[string]any{
			"action":    action,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
}

func (a *App) publishTimeout() time.Duration {
	if a.cfg.RequestTimeout > 0 {
		return a.cfg.RequestTimeout
	}
	return defaultPublishTimeout
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }

// Register creates an account.
func (a *App) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	user, err := a.client.Auth().Register(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}
	a.publish(ctx, publishers.ActionRegistered, user.Username, map[string]string{
		"username": reg.Username,
		"email":    reg.Email,
	})
	return user, nil
}

// Login authenticates and stores the returned access token for later calls.
func (a *App) Login(ctx context.Context, username, password string) (domain.Token, error) {
	tok, err := a.client.Auth().Login(ctx, username, password)
	if err != nil {
		return domain.Token{}, err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return domain.Token{}, ErrNoAccessToken
	}
	if err := a.store.Set(api.TokenKey, tok.AccessToken); err != nil {
		return domain.Token{}, fmt.Errorf("store access token: %w", err)
	}
	a.publish(ctx, publishers.ActionLoggedIn, username, map[string]string{"username": username})
	return tok, nil
}

// Logout forgets the stored token. It is a no-op when not logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Delete(api.TokenKey); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}
	a.publish(ctx, publishers.ActionLoggedOut, "", nil)
	return nil
}

// Session reports whether a token is currently stored.
func (a *App) Session() (Session, error) {
	tok, ok, err := a.store.Get(api.TokenKey)
	if err != nil {
		return Session{}, fmt.Errorf("read access token: %w", err)
	}
	return Session{
		APIURL:   a.client.BaseURL(),
		LoggedIn: ok && strings.TrimSpace(tok) != "",
	}, nil
}

func (a *App) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return a.client.Products().GetAll(ctx)
}

func (a *App) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return a.client.Products().GetByID(ctx, id)
}

func (a *App) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := a.client.Products().Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	a.publish(ctx, publishers.ActionProductCreated, idString(created.ID), created)
	return created, nil
}

func (a *App) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	updated, err := a.client.Products().Update(ctx, id, p)
	if err != nil {
		return domain.Product{}, err
	}
	a.publish(ctx, publishers.ActionProductUpdated, idString(id), updated)
	return updated, nil
}

func (a *App) DeleteProduct(ctx context.Context, id int64) (domain.Message, error) {
	msg, err := a.client.Products().Delete(ctx, id)
	if err != nil {
		return domain.Message{}, err
	}
	a.publish(ctx, publishers.ActionProductDeleted, idString(id), nil)
	return msg, nil
}

func (a *App) Cart(ctx context.Context) (domain.Cart, error) {
	return a.client.Cart().GetCart(ctx)
}

func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) (domain.CartItem, error) {
	item, err := a.client.Cart().AddItem(ctx, productID, quantity)
	if err != nil {
		return domain.CartItem{}, err
	}
	a.publish(ctx, publishers.ActionCartItemAdded, idString(productID), map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	return item, nil
}

func (a *App) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (domain.CartItem, error) {
	item, err := a.client.Cart().UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return domain.CartItem{}, err
	}
	a.publish(ctx, publishers.ActionCartItemUpdate, idString(itemID), map[string]any{"quantity": quantity})
	return item, nil
}

func (a *App) RemoveCartItem(ctx context.Context, itemID int64) (domain.Message, error) {
	msg, err := a.client.Cart().RemoveItem(ctx, itemID)
	if err != nil {
		return domain.Message{}, err
	}
	a.publish(ctx, publishers.ActionCartItemRemove, idString(itemID), nil)
	return msg, nil
}
