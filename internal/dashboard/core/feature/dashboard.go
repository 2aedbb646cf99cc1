package feature

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/mylogger"
)

const MsgDashboardLoad = "Dashboard verileri yüklenirken bir hata oluştu"

type StatCard struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value int    `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	// Missing is set when the list behind the card could not be loaded.
	Missing bool `json:"missing,omitempty"`
}

type DashboardView struct {
	Load         LoadState           `json:"load"`
	Stats        []StatCard          `json:"stats"`
	Routes       []mapview.RouteLine `json:"routes,omitempty"`
	Focused      string              `json:"focused,omitempty"`
	Map          *mapview.View       `json:"map,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// Dashboard shows entity counts and the overview map of every drawable route.
type Dashboard struct {
	svc   *Services
	env   Env
	mylog mylogger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	disposed     bool
	loadSeq      int
	load         LoadState
	stats        []StatCard
	overview     *mapview.Overview
	errorMessage string
}

func NewDashboard(svc *Services, env Env) *Dashboard {
	env = env.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		svc:    svc,
		env:    env,
		mylog:  env.Log.With("module", "dashboard"),
		ctx:    ctx,
		cancel: cancel,
		load:   LoadIdle,
	}
}

type dashboardData struct {
	companies, drivers, buses int
	routes                    []models.Route
	stops                     []models.RouteStop
	trips                     []models.Trip
	failed                    map[string]bool
}

func count[T any](env dto.Envelope[[]T], err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if !env.IsSuccess {
		return 0, fmt.Errorf("%w: %s", myerrors.ErrRejected, env.Message)
	}
	return len(env.Data), nil
}

func list[T any](env dto.Envelope[[]T], err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, fmt.Errorf("%w: %s", myerrors.ErrRejected, env.Message)
	}
	return env.Data, nil
}

// Load fetches all lists in parallel. A failed list only blanks its own
// card; the map needs routes and stops.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return myerrors.ErrDisposed
	}
	d.loadSeq++
	seq := d.loadSeq
	d.load = LoadLoading
	d.errorMessage = ""
	d.mu.Unlock()

	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(d.ctx, cancel)
	defer stop()

	data := dashboardData{failed: make(map[string]bool)}
	var fmu sync.Mutex
	fail := func(key string, err error) {
		fmu.Lock()
		data.failed[key] = true
		fmu.Unlock()
		d.mylog.Action("load_dashboard").Warn("list failed", "list", key, "error", err.Error())
	}

	var g errgroup.Group
	g.Go(func() error {
		n, err := count(d.svc.Companies.GetAll(opCtx))
		if err != nil {
			fail(ModuleCompanies, err)
		}
		data.companies = n
		return nil
	})
	g.Go(func() error {
		n, err := count(d.svc.Drivers.GetAll(opCtx))
		if err != nil {
			fail(ModuleDrivers, err)
		}
		data.drivers = n
		return nil
	})
	g.Go(func() error {
		n, err := count(d.svc.Buses.GetAll(opCtx))
		if err != nil {
			fail(ModuleBuses, err)
		}
		data.buses = n
		return nil
	})
	g.Go(func() error {
		routes, err := list(d.svc.Routes.GetAll(opCtx))
		if err != nil {
			fail(ModuleRoutes, err)
		}
		data.routes = routes
		return nil
	})
	g.Go(func() error {
		stops, err := list(d.svc.RouteStops.GetAll(opCtx))
		if err != nil {
			fail(ModuleStops, err)
		}
		data.stops = stops
		return nil
	})
	g.Go(func() error {
		trips, err := list(d.svc.Trips.GetAll(opCtx))
		if err != nil {
			fail(ModuleTrips, err)
		}
		data.trips = trips
		return nil
	})
	_ = g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return myerrors.ErrDisposed
	}
	if seq != d.loadSeq {
		return nil
	}

	d.stats = d.buildStats(data)
	if d.overview != nil {
		d.overview.Close()
		d.overview = nil
	}
	if data.failed[ModuleRoutes] || data.failed[ModuleStops] {
		d.load = LoadError
		d.errorMessage = MsgDashboardLoad
		return myerrors.ErrRejected
	}
	byRoute := make(map[string][]models.RouteStop)
	for _, s := range data.stops {
		byRoute[s.RouteID] = append(byRoute[s.RouteID], s)
	}
	d.overview = mapview.NewOverview(data.routes, byRoute, d.env.Timing.DefaultCenter)
	d.load = LoadLoaded
	return nil
}

func (d *Dashboard) buildStats(data dashboardData) []StatCard {
	now := d.env.now()
	active := 0
	for _, t := range data.trips {
		if t.ActiveAt(now) {
			active++
		}
	}
	card := func(key, title, icon, color string, value int) StatCard {
		return StatCard{Key: key, Title: title, Value: value, Icon: icon, Color: color, Missing: data.failed[key]}
	}
	return []StatCard{
		card(ModuleCompanies, "Toplam Şirket", "building", "blue", data.companies),
		card(ModuleDrivers, "Aktif Sürücü", "user", "green", data.drivers),
		card(ModuleBuses, "Otobüs Sayısı", "bus", "purple", data.buses),
		card(ModuleRoutes, "Aktif Rota", "route", "orange", len(data.routes)),
		card(ModuleStops, "Toplam Durak", "map-pin", "pink", len(data.stops)),
		card(ModuleTrips, "Günlük Sefer", "calendar", "indigo", active),
	}
}

// ToggleRoute isolates a route on the overview map, or restores all routes
// when it is already isolated.
func (d *Dashboard) ToggleRoute(routeID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overview == nil {
		return myerrors.ErrWidgetClosed
	}
	return d.overview.Toggle(routeID)
}

func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := DashboardView{
		Load:         d.load,
		Stats:        d.stats,
		ErrorMessage: d.errorMessage,
	}
	if d.overview != nil {
		v.Routes = d.overview.Lines()
		v.Focused = d.overview.Focused()
		if mv, err := d.overview.View(); err == nil {
			v.Map = &mv
		}
	}
	return v
}

func (d *Dashboard) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	d.cancel()
	if d.overview != nil {
		d.overview.Close()
		d.overview = nil
	}
}
