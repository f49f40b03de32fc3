package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/metrics"
	"github.com/shashiranjanraj/qrmenu/pkg/qrcode"
	"github.com/shashiranjanraj/qrmenu/pkg/validate"
)

// Store keys. Each holds a JSON array.
const (
	KeyMenus      = "menus"
	KeyCategories = "categories"
	KeyThemes     = "themes"
)

// DefaultCategories seed the category catalog on first read.
var DefaultCategories = []models.MenuCategory{
	{ID: "1", Name: "Starters"},
	{ID: "2", Name: "Main Dishes"},
	{ID: "3", Name: "Desserts"},
	{ID: "4", Name: "Beverages"},
	{ID: "5", Name: "Sides"},
}

// DefaultThemes seed the theme catalog on first read.
var DefaultThemes = []models.Theme{
	{
		ID:             "1",
		Name:           "Classic",
		Description:    "A timeless design with elegant typography",
		PrimaryColor:   "#1d4ed8",
		SecondaryColor: "#f59e0b",
		FontFamily:     "Lora, serif",
		Preview:        "classic-preview.jpg",
	},
	{
		ID:             "2",
		Name:           "Modern",
		Description:    "Clean, minimalist design with focus on presentation",
		PrimaryColor:   "#10b981",
		SecondaryColor: "#a855f7",
		FontFamily:     "Inter, sans-serif",
		Preview:        "modern-preview.jpg",
	},
	{
		ID:             "3",
		Name:           "Rustic",
		Description:    "Warm earth tones with a homely feel",
		PrimaryColor:   "#b45309",
		SecondaryColor: "#064e3b",
		FontFamily:     "Lora, serif",
		Preview:        "rustic-preview.jpg",
	},
	{
		ID:             "4",
		Name:           "Vibrant",
		Description:    "Bold colors and playful typography",
		PrimaryColor:   "#db2777",
		SecondaryColor: "#fcd34d",
		FontFamily:     "Poppins, sans-serif",
		Preview:        "vibrant-preview.jpg",
	},
}

// MenuOptions configures a MenuService.
type MenuOptions struct {
	// AppURL is the public origin; menus live at <AppURL>/menu/<id>.
	AppURL   string
	Renderer qrcode.Renderer
	Notifier qrcode.Notifier
	Policy   qrcode.Policy
}

// MenuService owns menus, categories and themes. All three live as whole
// JSON documents in a kvstore.Store; every read-modify-write of them runs
// under mu, so one process never loses an update to itself.
type MenuService struct {
	store    kvstore.Store
	appURL   string
	renderer qrcode.Renderer
	notifier qrcode.Notifier
	policy   qrcode.Policy

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewMenuService(store kvstore.Store, opts MenuOptions) *MenuService {
	if opts.Notifier == nil {
		opts.Notifier = qrcode.NopNotifier{}
	}
	if opts.Policy == "" {
		opts.Policy = qrcode.PolicyRequired
	}
	return &MenuService{
		store:    store,
		appURL:   opts.AppURL,
		renderer: opts.Renderer,
		notifier: opts.Notifier,
		policy:   opts.Policy,
		now:      time.Now,
		newID:    newID,
	}
}

// newID returns a time-ordered UUIDv7.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ─── Catalogs ─────────────────────────────────────────────────────────────────

// ListCategories returns the category catalog, seeding the defaults the
// first time it is read.
func (s *MenuService) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories(ctx)
}

// ListThemes returns the theme catalog, seeding the defaults the first
// time it is read.
func (s *MenuService) ListThemes(ctx context.Context) ([]models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.themes(ctx)
}

func (s *MenuService) GetThemeByID(ctx context.Context, id string) (models.Theme, bool, error) {
	themes, err := s.ListThemes(ctx)
	if err != nil {
		return models.Theme{}, false, err
	}
	for _, t := range themes {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Theme{}, false, nil
}

// categories and themes must be called with mu held.
func (s *MenuService) categories(ctx context.Context) ([]models.MenuCategory, error) {
	return seeded(ctx, s, KeyCategories, DefaultCategories)
}

func (s *MenuService) themes(ctx context.Context) ([]models.Theme, error) {
	return seeded(ctx, s, KeyThemes, DefaultThemes)
}

func seeded[T any](ctx context.Context, s *MenuService, key string, defaults []T) ([]T, error) {
	var out []T
	found, err := s.load(ctx, key, &out)
	if err != nil {
		return nil, err
	}
	if found {
		return out, nil
	}

	out = slices.Clone(defaults)
	if err := s.save(ctx, key, out); err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("seeded catalog", "key", key, "count", len(out))
	return out, nil
}

// ─── Menus ────────────────────────────────────────────────────────────────────

// CreateMenu builds a menu owned by the session's user, registers its QR
// code and appends it to the collection.
func (s *MenuService) CreateMenu(ctx context.Context, sess Session, in models.MenuInput) (menu models.Menu, err error) {
	defer func() { metrics.RecordMenuOp("create", outcome(err)) }()

	user, ok := sess.CurrentUser()
	if !ok {
		return models.Menu{}, ErrAuthenticationRequired
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return models.Menu{}, invalid(errs)
	}

	s.mu.Lock()
	catalog, err := s.categories(ctx)
	var themes []models.Theme
	if err == nil {
		themes, err = s.themes(ctx)
	}
	s.mu.Unlock()
	if err != nil {
		return models.Menu{}, err
	}

	items := withItemIDs(in.Items, s.newID)
	fields := map[string]string{}
	checkTheme(themes, in.ThemeID, fields)
	snapshot := snapshotCategories(catalog, in.Categories, items, fields)
	if err := invalid(fields); err != nil {
		return models.Menu{}, err
	}

	id := s.newID()
	menuURL := s.appURL + "/menu/" + id
	now := s.now().UTC()
	menu = models.Menu{
		ID:           id,
		UserID:       user.ID,
		BusinessName: in.BusinessName,
		Logo:         in.Logo,
		ThemeID:      in.ThemeID,
		QRCodeURL:    s.renderer.URL(menuURL),
		MenuURL:      menuURL,
		Categories:   snapshot,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.notify(ctx, menu.ID, menu.QRCodeURL); err != nil {
		return models.Menu{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menus, err := s.menus(ctx)
	if err != nil {
		return models.Menu{}, err
	}
	if err := s.save(ctx, KeyMenus, append(menus, menu)); err != nil {
		// the registry already holds this id; there is no delete to undo it
		logger.WithCtx(ctx).Error("menu not stored, qr registry record orphaned",
			"menu_id", menu.ID, "qr_code_url", menu.QRCodeURL, "error", err)
		return models.Menu{}, err
	}

	logger.WithCtx(ctx).Info("menu created", "menu_id", menu.ID, "user_id", user.ID, "items", len(items))
	return menu, nil
}

// GetUserMenus returns userID's menus in creation order. A user without
// menus gets an empty slice.
func (s *MenuService) GetUserMenus(ctx context.Context, userID string) ([]models.Menu, error) {
	menus, err := s.menus(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Menu{}
	for _, m := range menus {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetMenuByID looks a menu up without any ownership check.
func (s *MenuService) GetMenuByID(ctx context.Context, id string) (models.Menu, bool, error) {
	menus, err := s.menus(ctx)
	if err != nil {
		return models.Menu{}, false, err
	}
	if i := indexOf(menus, id); i >= 0 {
		return menus[i], true, nil
	}
	return models.Menu{}, false, nil
}

// GetPublicMenu backs the customer-facing page. Any menu id is readable.
func (s *MenuService) GetPublicMenu(ctx context.Context, id string) (models.Menu, bool, error) {
	return s.GetMenuByID(ctx, id)
}

// UpdateMenu applies patch to a menu the session's user owns.
func (s *MenuService) UpdateMenu(ctx context.Context, sess Session, id string, patch models.MenuPatch) (menu models.Menu, err error) {
	defer func() { metrics.RecordMenuOp("update", outcome(err)) }()

	user, ok := sess.CurrentUser()
	if !ok {
		return models.Menu{}, ErrAuthenticationRequired
	}
	if errs := validate.Struct(patch); len(errs) > 0 {
		return models.Menu{}, invalid(errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menus, err := s.menus(ctx)
	if err != nil {
		return models.Menu{}, err
	}
	i := indexOf(menus, id)
	if i < 0 {
		return models.Menu{}, ErrNotFound
	}
	if menus[i].UserID != user.ID {
		return models.Menu{}, ErrPermissionDenied
	}

	updated, err := s.apply(ctx, menus[i], patch)
	if err != nil {
		return models.Menu{}, err
	}
	updated.UpdatedAt = s.nextTimestamp(menus[i].UpdatedAt)

	next := slices.Clone(menus)
	next[i] = updated
	if err := s.save(ctx, KeyMenus, next); err != nil {
		return models.Menu{}, err
	}

	logger.WithCtx(ctx).Info("menu updated", "menu_id", id, "user_id", user.ID)
	return updated, nil
}

// DeleteMenu removes a menu the session's user owns.
func (s *MenuService) DeleteMenu(ctx context.Context, sess Session, id string) (err error) {
	defer func() { metrics.RecordMenuOp("delete", outcome(err)) }()

	user, ok := sess.CurrentUser()
	if !ok {
		return ErrAuthenticationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	menus, err := s.menus(ctx)
	if err != nil {
		return err
	}
	i := indexOf(menus, id)
	if i < 0 {
		return ErrNotFound
	}
	if menus[i].UserID != user.ID {
		return ErrPermissionDenied
	}

	if err := s.save(ctx, KeyMenus, slices.Delete(menus, i, i+1)); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("menu deleted", "menu_id", id, "user_id", user.ID)
	return nil
}

// apply merges patch onto m and validates any references it changes.
// Must be called with mu held.
func (s *MenuService) apply(ctx context.Context, m models.Menu, patch models.MenuPatch) (models.Menu, error) {
	fields := map[string]string{}

	if patch.BusinessName != nil {
		m.BusinessName = *patch.BusinessName
	}
	if patch.Logo != nil {
		m.Logo = *patch.Logo
	}
	if patch.ThemeID != nil {
		themes, err := s.themes(ctx)
		if err != nil {
			return m, err
		}
		checkTheme(themes, *patch.ThemeID, fields)
		m.ThemeID = *patch.ThemeID
	}

	if patch.Items != nil || patch.Categories != nil {
		catalog, err := s.categories(ctx)
		if err != nil {
			return m, err
		}
		if patch.Items != nil {
			m.Items = withItemIDs(*patch.Items, s.newID)
		}
		var supplied []models.MenuCategory
		if patch.Categories != nil {
			supplied = *patch.Categories
		}
		m.Categories = snapshotCategories(catalog, supplied, m.Items, fields)
	}

	return m, invalid(fields)
}

// nextTimestamp returns now, or prev+1ms when the clock has not moved
// past prev, so updatedAt strictly increases.
func (s *MenuService) nextTimestamp(prev time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// notify tells the registry about a new QR code and applies the policy
// to a failure.
func (s *MenuService) notify(ctx context.Context, menuID, qrCodeURL string) error {
	err := s.notifier.Notify(ctx, menuID, qrCodeURL)
	if err == nil {
		metrics.RecordNotification("ok")
		return nil
	}

	log := logger.WithCtx(ctx)
	if s.policy == qrcode.PolicyBestEffort {
		metrics.RecordNotification("skipped")
		log.Warn("qr registry unavailable, keeping menu", "menu_id", menuID, "error", err)
		return nil
	}

	metrics.RecordNotification("failed")
	log.Error("qr registry unavailable, aborting menu", "menu_id", menuID, "error", err)
	return persistErr("register qr code", err)
}

// menus reads the whole collection. The store hands back complete
// documents, so readers do not need mu; writers hold it across the
// read and the write.
func (s *MenuService) menus(ctx context.Context) ([]models.Menu, error) {
	var out []models.Menu
	if _, err := s.load(ctx, KeyMenus, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Menu{}
	}
	return out, nil
}

func (s *MenuService) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, persistErr("read "+key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, persistErr("decode "+key, err)
	}
	return true, nil
}

func (s *MenuService) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return persistErr("encode "+key, err)
	}
	return persistErr("write "+key, s.store.Set(ctx, key, string(b)))
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func indexOf(menus []models.Menu, id string) int {
	return slices.IndexFunc(menus, func(m models.Menu) bool { return m.ID == id })
}

// withItemIDs copies items, giving an id to any item without one.
func withItemIDs(items []models.MenuItem, gen func() string) []models.MenuItem {
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = gen()
		}
		if len(out[i].Tags) == 0 {
			out[i].Tags = nil
		} else {
			out[i].Tags = slices.Clone(out[i].Tags)
		}
	}
	if out == nil {
		out = []models.MenuItem{}
	}
	return out
}

func checkTheme(themes []models.Theme, id string, fields map[string]string) {
	for _, t := range themes {
		if t.ID == id {
			return
		}
	}
	fields["themeId"] = fmt.Sprintf("The theme %q does not exist.", id)
}

// snapshotCategories returns the catalog entries referenced by supplied or
// by any item, in catalog order. Unknown ids are reported in fields.
func snapshotCategories(catalog, supplied []models.MenuCategory, items []models.MenuItem, fields map[string]string) []models.MenuCategory {
	known := make(map[string]bool, len(catalog))
	for _, c := range catalog {
		known[c.ID] = true
	}

	used := map[string]bool{}
	for i, c := range supplied {
		if !known[c.ID] {
			fields[fmt.Sprintf("categories[%d].id", i)] = fmt.Sprintf("The category %q does not exist.", c.ID)
			continue
		}
		used[c.ID] = true
	}
	for i, it := range items {
		if !known[it.Category] {
			fields[fmt.Sprintf("items[%d].category", i)] = fmt.Sprintf("The category %q does not exist.", it.Category)
			continue
		}
		used[it.Category] = true
	}

	out := []models.MenuCategory{}
	for _, c := range catalog {
		if used[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func outcome(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermissionDenied):
		return "denied"
	case errors.Is(err, ErrAuthenticationRequired):
		return "unauthenticated"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}
