package goadmin

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	core "github.com/goliatone/go-salesboard/components/salesboard"
	salesboardpkg "github.com/goliatone/go-salesboard/pkg/salesboard"
)

// MenuBuilder ensures salesboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the salesboard service and feature flags into an admin shell.
type Config struct {
	EnableSalesboard bool
	MenuCode         string
	MenuBuilder      MenuBuilder
	Service          *salesboardpkg.Service
	// NewService builds the service when Service is nil. It receives the
	// admin action hook so recorded actions reach ActionHooks.
	NewService      func(hook core.ActionHook) *salesboardpkg.Service
	DefaultMenuItem MenuItem
	// ActionHooks receive every UI action recorded by the dashboard.
	ActionHooks []core.ActionHook
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed the sales dashboard menu.
func New(cfg Config) (*Admin, error) {
	admin := &Admin{cfg: cfg}
	if cfg.Service == nil && cfg.NewService != nil {
		cfg.Service = cfg.NewService(admin.ActionHook())
	}
	if cfg.EnableSalesboard && cfg.Service == nil {
		return nil, goerrors.New("goadmin: salesboard service is required when enabled", goerrors.CategoryBadInput)
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Sales Dashboard"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.sales.dashboard"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "chart-bar"
	}
	admin.cfg = cfg
	return admin, nil
}

// Salesboard exposes the configured service when enabled.
func (a *Admin) Salesboard() *salesboardpkg.Service {
	if !a.cfg.EnableSalesboard {
		return nil
	}
	return a.cfg.Service
}

// ActionHook fans recorded actions out to the configured hooks.
func (a *Admin) ActionHook() core.ActionHook {
	return core.MultiActionHook(a.cfg.ActionHooks)
}

// Bootstrap seeds menu entries when the salesboard is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableSalesboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
