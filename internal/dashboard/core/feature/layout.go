package feature

import "sync"

type MenuItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Route string `json:"route"`
}

// Menu is the sidebar navigation in display order.
var Menu = []MenuItem{
	{Label: "Dashboard", Icon: "home", Route: "/dashboard"},
	{Label: "Şirketler", Icon: "building", Route: "/" + ModuleCompanies},
	{Label: "Sürücüler", Icon: "user", Route: "/" + ModuleDrivers},
	{Label: "Servisler", Icon: "bus", Route: "/" + ModuleBuses},
	{Label: "Rotalar", Icon: "route", Route: "/" + ModuleRoutes},
	{Label: "Duraklar", Icon: "map-pin", Route: "/" + ModuleStops},
	{Label: "Seferler", Icon: "calendar", Route: "/" + ModuleTrips},
	{Label: "Kullanıcılar", Icon: "users", Route: "/" + ModuleUsers},
	{Label: "Profil", Icon: "settings", Route: "/profile"},
}

type LayoutView struct {
	Menu      []MenuItem `json:"menu"`
	Collapsed bool       `json:"collapsed"`
	UserName  string     `json:"user_name,omitempty"`
	UserEmail string     `json:"user_email,omitempty"`
	Theme     string     `json:"theme"`
}

// Layout is the shell around every screen. Only the sidebar state lives here;
// user and theme come from the session on each render.
type Layout struct {
	mu        sync.Mutex
	collapsed bool
}

func (l *Layout) ToggleSidebar() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.collapsed = !l.collapsed
	return l.collapsed
}

func (l *Layout) Collapsed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collapsed
}
