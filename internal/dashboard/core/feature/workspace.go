package feature

import (
	"slices"
	"sync"

	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/core/ports/driver"
)

// Workspace is everything one signed-in session has open. Modules are built
// lazily and all of them are torn down together on logout.
type Workspace struct {
	api   driven.IAPIClient
	users UserStore
	env   Env

	Services *Services
	Layout   *Layout

	mu        sync.Mutex
	disposed  bool
	modules   map[string]driver.IModule
	profile   *Profile
	dashboard *Dashboard
}

func NewWorkspace(api driven.IAPIClient, users UserStore, env Env) *Workspace {
	return &Workspace{
		api:      api,
		users:    users,
		env:      env.withDefaults(),
		Services: NewServices(api),
		Layout:   &Layout{},
		modules:  make(map[string]driver.IModule),
	}
}

// ModuleNames lists every entity screen.
func ModuleNames() []string {
	names := []string{ModuleCompanies, ModuleDrivers, ModuleBuses, ModuleRoutes, ModuleStops, ModuleTrips, ModuleUsers}
	slices.Sort(names)
	return names
}

func (w *Workspace) build(name string) (driver.IModule, bool) {
	s := w.Services
	switch name {
	case ModuleCompanies:
		return NewModule(CompaniesSpec(s), w.env), true
	case ModuleDrivers:
		return NewModule(DriversSpec(s), w.env), true
	case ModuleBuses:
		return NewModule(BusesSpec(s, w.env), w.env), true
	case ModuleRoutes:
		return NewModule(RoutesSpec(s, w.env), w.env), true
	case ModuleStops:
		return NewModule(StopsSpec(s), w.env), true
	case ModuleTrips:
		return NewModule(TripsSpec(s, w.env), w.env), true
	case ModuleUsers:
		return NewModule(UsersSpec(s), w.env), true
	}
	return nil, false
}

// Module returns the named screen, creating it on first use.
func (w *Workspace) Module(name string) (driver.IModule, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return nil, false
	}
	if m, ok := w.modules[name]; ok {
		return m, true
	}
	m, ok := w.build(name)
	if !ok {
		return nil, false
	}
	w.modules[name] = m
	return m, true
}

// Enter navigates to the named screen: every other open screen is disposed.
func (w *Workspace) Enter(name string) (driver.IModule, bool) {
	if !slices.Contains(ModuleNames(), name) {
		return nil, false
	}
	w.disposeExcept(name)
	return w.Module(name)
}

// LeaveAll disposes every entity screen, for pages that are not one.
func (w *Workspace) LeaveAll() {
	w.disposeExcept("")
}

func (w *Workspace) disposeExcept(name string) {
	w.mu.Lock()
	var left []driver.IModule
	for n, m := range w.modules {
		if n != name {
			left = append(left, m)
			delete(w.modules, n)
		}
	}
	w.mu.Unlock()
	for _, m := range left {
		m.Dispose()
	}
}

// Leave disposes a screen the operator navigated away from.
func (w *Workspace) Leave(name string) {
	w.mu.Lock()
	m, ok := w.modules[name]
	delete(w.modules, name)
	w.mu.Unlock()
	if ok {
		m.Dispose()
	}
}

func (w *Workspace) Profile() *Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.profile == nil {
		w.profile = NewProfile(w.Services.Profile, w.users, w.env)
	}
	return w.profile
}

func (w *Workspace) Dashboard() *Dashboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dashboard == nil {
		w.dashboard = NewDashboard(w.Services, w.env)
	}
	return w.dashboard
}

// Dispose tears down every module, the profile and the dashboard.
func (w *Workspace) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	modules := w.modules
	w.modules = nil
	profile, dash := w.profile, w.dashboard
	w.mu.Unlock()

	for _, m := range modules {
		m.Dispose()
	}
	if profile != nil {
		profile.Dispose()
	}
	if dash != nil {
		dash.Dispose()
	}
}
