package commands

import "github.com/udisondev/regionflags/internal/admin"

// RegisterAll registers all region flag commands into the handler.
func RegisterAll(h *admin.Handler, store Store, reloader Reloader, locator Locator) {
	h.Register(NewFlags(store))
	h.Register(NewDefine(store))
	h.Register(NewDamage(store))
	h.Register(NewHeal(store))
	h.Register(NewBan(store))
	h.Register(NewUnban(store))
	h.Register(NewInfo(store, locator))
	h.Register(NewList(store))
	h.Register(NewReload(reloader))
}
