package feature

import (
	"context"
	"errors"
	"sync"
	"time"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driver"
	"shuttle-admin/internal/mylogger"
)

const (
	MsgNoStoredUser     = "Kullanıcı bilgisi bulunamadı"
	MsgProfileLoad      = "Profil yüklenemedi"
	MsgProfileLoadErr   = "Profil yüklenirken bir hata oluştu"
	MsgProfileUpdated   = "Profil başarıyla güncellendi!"
	MsgProfileUpdateErr = "Profil güncellenirken bir hata oluştu"
	MsgPasswordMismatch = "Yeni şifreler eşleşmiyor"
	MsgPasswordNoAPI    = "Şifre değiştirme özelliği henüz backend tarafında eklenmedi"
)

// UserStore is where the signed-in user pointer lives.
type UserStore interface {
	User(ctx context.Context) (models.AuthUser, bool, error)
	SaveUser(ctx context.Context, user models.AuthUser) error
}

type ProfileView struct {
	Load           LoadState     `json:"load"`
	User           *models.User  `json:"user,omitempty"`
	Editing        bool          `json:"editing"`
	Submitting     bool          `json:"submitting"`
	Form           *FormView     `json:"form,omitempty"`
	Map            *mapview.View `json:"map,omitempty"`
	Password       FormView      `json:"password"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	SuccessMessage string        `json:"success_message,omitempty"`
}

// Profile is the signed-in user's own page: details, edit form, a map modal
// for picking the home location and the password tab.
type Profile struct {
	svc   driver.IProfileService
	users UserStore
	env   Env
	mylog mylogger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	disposed   bool
	timerSeq   int
	timers     map[int]Timer
	load       LoadState
	user       *models.User
	editing    bool
	submitting bool
	editSeq    int
	form       *Form
	password   *Form
	picker     *mapview.Picker
	selected   mapview.LatLng

	errorMessage   string
	successMessage string
}

func profileFields() []Field {
	return []Field{
		{Name: "firstName", Rules: []Rule{Required()}},
		{Name: "lastName", Rules: []Rule{Required()}},
		{Name: "phoneNumber", Rules: []Rule{Required()}},
		{Name: "homeCity", Rules: []Rule{Required()}},
		{Name: "homeDistrict", Rules: []Rule{Required()}},
		{Name: "homeAddress", Rules: []Rule{Required()}},
		{Name: "homeLatitude", Rules: []Rule{Required(), Numeric()}},
		{Name: "homeLongitude", Rules: []Rule{Required(), Numeric()}},
		{Name: "defaultRouteStopId"},
	}
}

func passwordFields() []Field {
	return []Field{
		{Name: "currentPassword", Rules: []Rule{Required(), MinLen(6)}},
		{Name: "newPassword", Rules: []Rule{Required(), MinLen(6)}},
		{Name: "confirmPassword", Rules: []Rule{Required(), MinLen(6)}},
	}
}

func NewProfile(svc driver.IProfileService, users UserStore, env Env) *Profile {
	env = env.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Profile{
		svc:      svc,
		users:    users,
		env:      env,
		mylog:    env.Log.With("module", "profile"),
		ctx:      ctx,
		cancel:   cancel,
		load:     LoadIdle,
		form:     NewForm(profileFields()),
		password: NewForm(passwordFields()),
	}
}

// schedule must be called with p.mu held.
func (p *Profile) schedule(d time.Duration, f func()) {
	if p.timers == nil {
		p.timers = make(map[int]Timer)
	}
	p.timerSeq++
	id := p.timerSeq
	p.timers[id] = p.env.Scheduler.AfterFunc(d, func() {
		p.mu.Lock()
		delete(p.timers, id)
		p.mu.Unlock()
		f()
	})
}

func (p *Profile) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(p.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Load reads the stored user pointer and fetches the full record.
func (p *Profile) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return myerrors.ErrDisposed
	}
	p.load = LoadLoading
	p.errorMessage = ""
	p.mu.Unlock()

	opCtx, cancel := p.opContext(ctx)
	defer cancel()

	auth, ok, err := p.users.User(opCtx)
	if err == nil && !ok {
		err = myerrors.ErrNotFound
	}
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.load = LoadError
		p.errorMessage = MsgNoStoredUser
		return err
	}

	env, err := p.svc.Get(opCtx, auth.ID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return myerrors.ErrDisposed
	}
	if err != nil {
		p.load = LoadError
		p.errorMessage = MsgProfileLoadErr
		p.mylog.Action("load_profile").Error("failed to load profile", err, "user_id", auth.ID)
		return err
	}
	if !env.IsSuccess {
		p.load = LoadError
		p.errorMessage = orDefault(env.Message, MsgProfileLoad)
		return myerrors.ErrRejected
	}
	user := env.Data
	p.user = &user
	p.load = LoadLoaded
	return nil
}

func (p *Profile) Edit() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return myerrors.ErrDisposed
	}
	if p.submitting {
		return myerrors.ErrBusy
	}
	if p.user == nil {
		return myerrors.ErrNotFound
	}
	u := p.user
	p.form.Reset(ModeEdit)
	p.form.Patch(map[string]string{
		"firstName":          u.FirstName,
		"lastName":           u.LastName,
		"phoneNumber":        u.PhoneNumber,
		"homeCity":           u.HomeCity,
		"homeDistrict":       u.HomeDistrict,
		"homeAddress":        u.HomeAddress,
		"homeLatitude":       formatCoord(u.HomeLatitude),
		"homeLongitude":      formatCoord(u.HomeLongitude),
		"defaultRouteStopId": deref(u.DefaultRouteStopID),
	})
	p.editing = true
	p.editSeq++
	p.errorMessage, p.successMessage = "", ""
	return nil
}

func (p *Profile) CancelEdit() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitting {
		return myerrors.ErrBusy
	}
	p.cancelEditLocked()
	return nil
}

func (p *Profile) cancelEditLocked() {
	p.closeMapLocked()
	p.editing = false
	p.editSeq++
	p.errorMessage, p.successMessage = "", ""
}

func (p *Profile) SetFields(values map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.editing {
		return myerrors.ErrModalClosed
	}
	for name, v := range values {
		if err := p.form.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// OpenMap starts the location picker at the coordinates in the form, or the
// stored home location when those do not parse.
func (p *Profile) OpenMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.editing {
		return myerrors.ErrModalClosed
	}
	p.closeMapLocked()
	at := p.env.Timing.DefaultCenter
	if p.user != nil {
		at = mapview.LatLng{Lat: p.user.HomeLatitude, Lng: p.user.HomeLongitude}
	}
	lat, err1 := p.form.Float("homeLatitude")
	lng, err2 := p.form.Float("homeLongitude")
	if err1 == nil && err2 == nil {
		at = mapview.LatLng{Lat: lat, Lng: lng}
	}
	p.selected = at
	p.picker = mapview.NewPicker(at, func(to mapview.LatLng) {
		p.selected = to
	})
	return nil
}

func (p *Profile) MapEvent(event string, lat, lng float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.picker == nil {
		return myerrors.ErrWidgetClosed
	}
	return p.picker.Fire(event, mapview.LatLng{Lat: lat, Lng: lng})
}

// ConfirmMap writes the picked position into the form and closes the map.
func (p *Profile) ConfirmMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.picker == nil {
		return myerrors.ErrWidgetClosed
	}
	p.form.Patch(map[string]string{
		"homeLatitude":  formatCoord(p.selected.Lat),
		"homeLongitude": formatCoord(p.selected.Lng),
	})
	p.closeMapLocked()
	return nil
}

func (p *Profile) CloseMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeMapLocked()
	return nil
}

func (p *Profile) closeMapLocked() {
	if p.picker != nil {
		p.picker.Close()
		p.picker = nil
	}
}

// Submit sends the profile update. On success the stored user's names are
// refreshed, and after the profile close delay the page reloads and leaves
// edit mode.
func (p *Profile) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return myerrors.ErrDisposed
	}
	if p.submitting {
		p.mu.Unlock()
		return myerrors.ErrBusy
	}
	if !p.editing || p.user == nil {
		p.mu.Unlock()
		return myerrors.ErrModalClosed
	}
	if !p.form.Valid() {
		p.form.TouchAll()
		p.mu.Unlock()
		return myerrors.ErrValidation
	}
	lat, _ := p.form.Float("homeLatitude")
	lng, _ := p.form.Float("homeLongitude")
	payload := dto.UpdateUserPayload{
		ID:                 p.user.ID,
		FirstName:          p.form.Trimmed("firstName"),
		LastName:           p.form.Trimmed("lastName"),
		PhoneNumber:        p.form.Trimmed("phoneNumber"),
		HomeCity:           p.form.Trimmed("homeCity"),
		HomeDistrict:       p.form.Trimmed("homeDistrict"),
		HomeAddress:        p.form.Trimmed("homeAddress"),
		HomeLatitude:       lat,
		HomeLongitude:      lng,
		DefaultRouteStopID: p.form.Optional("defaultRouteStopId"),
	}
	p.submitting = true
	p.errorMessage, p.successMessage = "", ""
	seq := p.editSeq
	p.mu.Unlock()

	opCtx, cancel := p.opContext(ctx)
	defer cancel()
	env, err := p.svc.Update(opCtx, payload)

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return myerrors.ErrDisposed
	}
	p.submitting = false
	if err != nil {
		p.errorMessage = myerrors.ServerMessage(err, MsgProfileUpdateErr)
		p.mu.Unlock()
		p.mylog.Action("update_profile").Error("profile update failed", err, "user_id", payload.ID)
		return err
	}
	if !env.IsSuccess {
		p.errorMessage = orDefault(env.Message, MsgUpdateRejected)
		p.mu.Unlock()
		return myerrors.ErrRejected
	}
	p.successMessage = MsgProfileUpdated
	p.schedule(p.env.Timing.ProfileCloseDelay, func() {
		if err := p.Load(p.ctx); err != nil && !errors.Is(err, myerrors.ErrDisposed) {
			p.mylog.Action("reload_profile").Warn("reload failed", "error", err.Error())
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if !p.disposed && p.editSeq == seq {
			p.cancelEditLocked()
		}
	})
	p.mu.Unlock()

	if err := p.refreshStoredUser(opCtx, payload.FirstName, payload.LastName); err != nil {
		p.mylog.Action("update_profile").Warn("stored user not refreshed", "error", err.Error())
	}
	return nil
}

func (p *Profile) refreshStoredUser(ctx context.Context, first, last string) error {
	auth, ok, err := p.users.User(ctx)
	if err != nil || !ok {
		return err
	}
	auth.FirstName, auth.LastName = first, last
	return p.users.SaveUser(ctx, auth)
}

// ChangePassword validates the password tab. The backend has no endpoint
// for it yet, so a valid form ends in ErrNotSupported.
func (p *Profile) ChangePassword(values map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.password.Reset(ModeEdit)
	for name, v := range values {
		if err := p.password.Set(name, v); err != nil {
			return err
		}
	}
	p.errorMessage, p.successMessage = "", ""
	if !p.password.Valid() {
		p.password.TouchAll()
		return myerrors.ErrValidation
	}
	if p.password.Value("newPassword") != p.password.Value("confirmPassword") {
		p.errorMessage = MsgPasswordMismatch
		return myerrors.ErrValidation
	}
	p.errorMessage = MsgPasswordNoAPI
	return myerrors.ErrNotSupported
}

func (p *Profile) View() ProfileView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := ProfileView{
		Load:           p.load,
		Editing:        p.editing,
		Submitting:     p.submitting,
		Password:       p.password.View(),
		ErrorMessage:   p.errorMessage,
		SuccessMessage: p.successMessage,
	}
	if p.user != nil {
		u := *p.user
		v.User = &u
	}
	if p.editing {
		fv := p.form.View()
		v.Form = &fv
	}
	if p.picker != nil {
		if mv, err := p.picker.View(); err == nil {
			v.Map = &mv
		}
	}
	return v
}

func (p *Profile) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	p.disposed = true
	p.cancel()
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
	p.closeMapLocked()
}
