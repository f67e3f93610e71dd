// Package routes holds the site's route tables and the role required to
// reach each protected prefix.
package routes

import (
	"strings"

	"etiket-museum/internal/session"
)

var PublicRoutes = []string{
	"/",
	"/login",
	"/register",
	"/sejarah",
	"/venue",
	"/galery",
	"/contact",
	"/destination-info",
}

var AdminRoutes = []string{
	"/admin",
	"/admin/data-tiket",
	"/admin/data-koleksi",
	"/admin/data-pemesanan",
}

var BuyerRoutes = []string{
	"/beli/calender",
	"/pembeli/profile",
}

// RequiredRole returns the role a path demands, or "" for public paths.
// Matching is by prefix: everything under /admin is admin-only, everything
// under /beli and /pembeli is buyer-only.
func RequiredRole(path string) string {
	switch {
	case path == "/admin" || strings.HasPrefix(path, "/admin/"):
		return session.RoleAdmin
	case strings.HasPrefix(path, "/beli/") || strings.HasPrefix(path, "/pembeli/"):
		return session.RoleBuyer
	default:
		return ""
	}
}

// ForRole lists the routes a role may navigate to, for menu rendering.
func ForRole(role string) []string {
	switch role {
	case session.RoleAdmin:
		return append(append([]string{}, PublicRoutes...), AdminRoutes...)
	case session.RoleBuyer:
		return append(append([]string{}, PublicRoutes...), BuyerRoutes...)
	default:
		return append([]string{}, PublicRoutes...)
	}
}
