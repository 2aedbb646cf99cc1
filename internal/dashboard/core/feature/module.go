package feature

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/mylogger"
)

type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadLoaded  LoadState = "loaded"
	LoadError   LoadState = "error"
)

type ModalState string

const (
	ModalClosed     ModalState = "closed"
	ModalAdd        ModalState = "add"
	ModalEdit       ModalState = "edit"
	ModalSubmitting ModalState = "submitting"
)

type DeleteState string

const (
	DeleteClosed     DeleteState = "closed"
	DeleteConfirming DeleteState = "confirming"
	DeleteDeleting   DeleteState = "deleting"
)

type Row[T any] struct {
	ID      string            `json:"id"`
	Item    T                 `json:"item"`
	Display map[string]string `json:"display"`
}

type ModalView struct {
	State     ModalState    `json:"state"`
	Mode      FormMode      `json:"mode"`
	EditingID string        `json:"editing_id,omitempty"`
	Form      FormView      `json:"form"`
	Map       *mapview.View `json:"map,omitempty"`
}

type DeleteView struct {
	State    DeleteState `json:"state"`
	TargetID string      `json:"target_id"`
	Label    string      `json:"label"`
	Message  string      `json:"message,omitempty"`
}

type DetailView[T any] struct {
	Row     Row[T]        `json:"row"`
	Loading bool          `json:"loading"`
	Message string        `json:"message,omitempty"`
	Map     *mapview.View `json:"map,omitempty"`
}

type View[T any] struct {
	Module         string            `json:"module"`
	Title          string            `json:"title"`
	Load           LoadState         `json:"load"`
	Items          []Row[T]          `json:"items"`
	Total          int               `json:"total"`
	Filters        map[string]string `json:"filters,omitempty"`
	Lookups        Lookups           `json:"lookups,omitempty"`
	ErrorMessage   string            `json:"error_message,omitempty"`
	SuccessMessage string            `json:"success_message,omitempty"`
	Deletable      bool              `json:"deletable"`
	Modal          *ModalView        `json:"modal,omitempty"`
	Delete         *DeleteView       `json:"delete,omitempty"`
	Detail         *DetailView[T]    `json:"detail,omitempty"`
}

type detailState struct {
	id      string
	widget  *mapview.Widget
	loading bool
	message string
}

// Module is one list screen with its add/edit modal, delete confirmation
// and detail map. All state lives on the instance and every method is safe
// for concurrent use; network calls run outside the lock.
type Module[T models.Entity] struct {
	spec  Spec[T]
	env   Env
	mylog mylogger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	disposed bool
	timerSeq int
	timers   map[int]Timer

	load    LoadState
	loadSeq int
	items   []T
	lookups Lookups
	filters map[string]string

	errorMessage   string
	successMessage string

	modal     ModalState
	openMode  FormMode
	modalSeq  int
	editingID string
	form      *Form
	picker    *mapview.Picker

	deleteState   DeleteState
	deleteID      string
	deleteMessage string

	detail    *detailState
	detailSeq int
}

func NewModule[T models.Entity](spec Spec[T], env Env) *Module[T] {
	env = env.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Module[T]{
		spec:        spec,
		env:         env,
		mylog:       env.Log.With("module", spec.Name),
		ctx:         ctx,
		cancel:      cancel,
		load:        LoadIdle,
		lookups:     make(Lookups),
		filters:     make(map[string]string),
		modal:       ModalClosed,
		form:        NewForm(spec.Fields),
		deleteState: DeleteClosed,
	}
}

func (m *Module[T]) Name() string {
	return m.spec.Name
}

// opContext derives a request context that also ends when the module is disposed.
func (m *Module[T]) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(m.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// schedule must be called with m.mu held. Fired timers forget themselves.
func (m *Module[T]) schedule(d time.Duration, f func()) {
	if m.timers == nil {
		m.timers = make(map[int]Timer)
	}
	m.timerSeq++
	id := m.timerSeq
	m.timers[id] = m.env.Scheduler.AfterFunc(d, func() {
		m.mu.Lock()
		delete(m.timers, id)
		m.mu.Unlock()
		f()
	})
}

// Mount loads the lookup lists and the primary list.
func (m *Module[T]) Mount(ctx context.Context) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return myerrors.ErrDisposed
	}
	m.mu.Unlock()

	m.loadLookups(ctx)
	return m.Reload(ctx)
}

func (m *Module[T]) loadLookups(ctx context.Context) {
	if len(m.spec.Lookups) == 0 {
		return
	}
	opCtx, cancel := m.opContext(ctx)
	defer cancel()

	results := make([][]Option, len(m.spec.Lookups))
	ok := make([]bool, len(m.spec.Lookups))
	var g errgroup.Group
	for i, lk := range m.spec.Lookups {
		g.Go(func() error {
			opts, err := lk.Load(opCtx)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", lk.Name, err)
			}
			results[i], ok[i] = opts, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.mylog.Action("load_lookups").Warn("lookup failed", "error", err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	for i, lk := range m.spec.Lookups {
		if ok[i] {
			m.lookups[lk.Name] = results[i]
		}
	}
}

// Reload refreshes the primary list. A newer reload supersedes an older one.
func (m *Module[T]) Reload(ctx context.Context) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return myerrors.ErrDisposed
	}
	m.loadSeq++
	seq := m.loadSeq
	m.load = LoadLoading
	m.errorMessage = ""
	m.mu.Unlock()

	opCtx, cancel := m.opContext(ctx)
	defer cancel()
	env, err := m.spec.Service.GetAll(opCtx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return myerrors.ErrDisposed
	}
	if seq != m.loadSeq {
		return nil
	}
	if err != nil {
		m.load = LoadError
		m.items = nil
		m.errorMessage = m.spec.Messages.LoadFailed
		m.mylog.Action("reload").Error("failed to load list", err)
		return err
	}
	if !env.IsSuccess || env.Data == nil {
		m.load = LoadError
		m.items = nil
		m.errorMessage = orDefault(env.Message, MsgLoadEmpty)
		return myerrors.ErrRejected
	}

	items := slices.Clone(env.Data)
	if m.spec.Sort != nil {
		slices.SortStableFunc(items, m.spec.Sort)
	}
	m.items = items
	m.load = LoadLoaded
	return nil
}

func (m *Module[T]) find(id string) (T, bool) {
	for _, it := range m.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (m *Module[T]) guardModal() error {
	if m.disposed {
		return myerrors.ErrDisposed
	}
	if m.modal == ModalSubmitting {
		return myerrors.ErrBusy
	}
	return nil
}

func (m *Module[T]) OpenAdd(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guardModal(); err != nil {
		return err
	}
	m.releaseModalLocked()
	m.form.Reset(ModeAdd)
	m.modal, m.openMode = ModalAdd, ModeAdd
	if m.spec.Picker != nil {
		m.picker = m.newPicker(m.env.Timing.DefaultCenter)
	}
	return nil
}

func (m *Module[T]) OpenEdit(ctx context.Context, id string) error {
	m.mu.Lock()
	if err := m.guardModal(); err != nil {
		m.mu.Unlock()
		return err
	}
	item, ok := m.find(id)
	if !ok {
		m.mu.Unlock()
		return myerrors.ErrNotFound
	}
	m.releaseModalLocked()
	m.form.Reset(ModeEdit)
	m.form.Patch(m.spec.Prefill(item))
	m.modal, m.openMode = ModalEdit, ModeEdit
	m.editingID = id
	if m.spec.Picker != nil {
		m.picker = m.newPicker(m.formPosition(m.env.Timing.DefaultCenter))
	}
	seq := m.modalSeq
	pending := make(map[string]string)
	for _, c := range m.spec.Cascades {
		if v := m.form.Value(c.Field); v != "" {
			pending[c.Field] = v
		}
	}
	m.mu.Unlock()

	for _, c := range m.spec.Cascades {
		if v, ok := pending[c.Field]; ok {
			m.runCascade(ctx, c, v, seq)
		}
	}
	return nil
}

// SetFields applies operator edits. Coordinate edits move the picker marker
// and cascade fields reload their dependent options.
func (m *Module[T]) SetFields(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	if err := m.guardModal(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.modal == ModalClosed {
		m.mu.Unlock()
		return myerrors.ErrModalClosed
	}

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	slices.Sort(names)

	coordsChanged := false
	type cascadeRun struct {
		c     Cascade
		value string
	}
	var runs []cascadeRun
	for _, name := range names {
		if err := m.form.Set(name, values[name]); err != nil {
			m.mu.Unlock()
			return err
		}
		if p := m.spec.Picker; p != nil && (name == p.Lat || name == p.Lng) {
			coordsChanged = true
		}
		for _, c := range m.spec.Cascades {
			if c.Field != name {
				continue
			}
			m.form.Patch(map[string]string{c.Target: ""})
			if values[name] == "" {
				m.lookups[c.Lookup] = nil
				continue
			}
			runs = append(runs, cascadeRun{c: c, value: values[name]})
		}
	}
	if coordsChanged && m.picker != nil {
		if at, ok := m.parsePosition(); ok {
			_ = m.picker.SetPosition(at)
		}
	}
	seq := m.modalSeq
	m.mu.Unlock()

	for _, r := range runs {
		m.runCascade(ctx, r.c, r.value, seq)
	}
	return nil
}

func (m *Module[T]) runCascade(ctx context.Context, c Cascade, value string, seq int) {
	opCtx, cancel := m.opContext(ctx)
	defer cancel()
	opts, err := c.Load(opCtx, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed || m.modalSeq != seq || m.form.Value(c.Field) != value {
		return
	}
	if err != nil {
		m.mylog.Action("cascade").Warn("failed to load dependent options", "field", c.Field, "error", err.Error())
		m.lookups[c.Lookup] = nil
		return
	}
	m.lookups[c.Lookup] = opts
}

// MapEvent forwards a picker event (click or dragend) from the browser.
func (m *Module[T]) MapEvent(ctx context.Context, event string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guardModal(); err != nil {
		return err
	}
	if m.picker == nil {
		return myerrors.ErrWidgetClosed
	}
	return m.picker.Fire(event, mapview.LatLng{Lat: lat, Lng: lng})
}

// newPicker is called with m.mu held; the callback runs inside MapEvent,
// which also holds it.
func (m *Module[T]) newPicker(at mapview.LatLng) *mapview.Picker {
	p := m.spec.Picker
	return mapview.NewPicker(at, func(to mapview.LatLng) {
		m.form.Patch(map[string]string{
			p.Lat: formatCoord(to.Lat),
			p.Lng: formatCoord(to.Lng),
		})
	})
}

func (m *Module[T]) parsePosition() (mapview.LatLng, bool) {
	p := m.spec.Picker
	lat, ok1 := parseFinite(m.form.Trimmed(p.Lat))
	lng, ok2 := parseFinite(m.form.Trimmed(p.Lng))
	if !ok1 || !ok2 {
		return mapview.LatLng{}, false
	}
	return mapview.LatLng{Lat: lat, Lng: lng}, true
}

func (m *Module[T]) formPosition(def mapview.LatLng) mapview.LatLng {
	if at, ok := m.parsePosition(); ok {
		return at
	}
	return def
}

// Submit validates and sends the form. An invalid form touches every field
// and sends nothing. On success the modal stays in Submitting until the
// close delay elapses, then the list reloads and the modal closes.
func (m *Module[T]) Submit(ctx context.Context) error {
	m.mu.Lock()
	if err := m.guardModal(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.modal == ModalClosed {
		m.mu.Unlock()
		return myerrors.ErrModalClosed
	}
	if !m.form.Valid() {
		m.form.TouchAll()
		m.mu.Unlock()
		return myerrors.ErrValidation
	}
	payload, err := m.spec.Payload(m.form, m.editingID)
	if err != nil {
		m.form.TouchAll()
		m.mu.Unlock()
		return err
	}
	mode, openState := m.openMode, m.modal
	seq := m.modalSeq
	m.modal = ModalSubmitting
	m.errorMessage, m.successMessage = "", ""
	m.mu.Unlock()

	opCtx, cancel := m.opContext(ctx)
	defer cancel()
	var ok bool
	var message string
	if mode == ModeAdd {
		env, e := m.spec.Service.Create(opCtx, payload)
		ok, message, err = env.IsSuccess, env.Message, e
	} else {
		env, e := m.spec.Service.Update(opCtx, payload)
		ok, message, err = env.IsSuccess, env.Message, e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return myerrors.ErrDisposed
	}
	if m.modalSeq != seq {
		return nil
	}

	msgs := m.spec.Messages
	if err != nil {
		m.modal = openState
		fallback := msgs.CreateFailed
		if mode == ModeEdit {
			fallback = msgs.UpdateFailed
		}
		m.errorMessage = myerrors.ServerMessage(err, fallback)
		m.mylog.Action("submit").Error("save failed", err, "mode", string(mode))
		return err
	}
	if !ok {
		m.modal = openState
		fallback := MsgCreateRejected
		if mode == ModeEdit {
			fallback = MsgUpdateRejected
		}
		m.errorMessage = orDefault(message, fallback)
		return myerrors.ErrRejected
	}

	if mode == ModeAdd {
		m.successMessage = msgs.Created
	} else {
		m.successMessage = msgs.Updated
	}
	m.mylog.Action("submit").Info("saved", "mode", string(mode), "id", m.editingID)
	m.schedule(m.env.Timing.SuccessCloseDelay, func() {
		m.mu.Lock()
		if m.disposed {
			m.mu.Unlock()
			return
		}
		if m.modalSeq == seq {
			m.closeModalLocked()
		}
		m.mu.Unlock()
		if err := m.Reload(m.ctx); err != nil && !errors.Is(err, myerrors.ErrDisposed) {
			m.mylog.Action("reload_after_submit").Warn("reload failed", "error", err.Error())
		}
	})
	return nil
}

func (m *Module[T]) CloseModal(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return myerrors.ErrDisposed
	}
	m.closeModalLocked()
	return nil
}

func (m *Module[T]) closeModalLocked() {
	m.releaseModalLocked()
	m.modal = ModalClosed
	m.form.Reset(ModeAdd)
	m.errorMessage, m.successMessage = "", ""
}

// releaseModalLocked frees everything bound to the current modal.
func (m *Module[T]) releaseModalLocked() {
	if m.picker != nil {
		m.picker.Close()
		m.picker = nil
	}
	for _, c := range m.spec.Cascades {
		m.lookups[c.Lookup] = nil
	}
	m.editingID = ""
	m.errorMessage, m.successMessage = "", ""
	m.modalSeq++
}

func (m *Module[T]) OpenDetail(ctx context.Context, id string) error {
	if m.spec.Detail == nil {
		return myerrors.ErrNotSupported
	}
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return myerrors.ErrDisposed
	}
	item, ok := m.find(id)
	if !ok {
		m.mu.Unlock()
		return myerrors.ErrNotFound
	}
	m.releaseDetailLocked()
	m.detailSeq++
	seq := m.detailSeq
	m.detail = &detailState{id: id, loading: true}
	lk := m.lookups.clone()
	m.mu.Unlock()

	opCtx, cancel := m.opContext(ctx)
	defer cancel()
	w, err := m.spec.Detail(opCtx, item, lk)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed || m.detail == nil || m.detailSeq != seq {
		if w != nil {
			w.Close()
		}
		if m.disposed {
			return myerrors.ErrDisposed
		}
		return nil
	}
	m.detail.loading = false
	if err != nil {
		m.detail.message = myerrors.ServerMessage(err, m.spec.Messages.LoadFailed)
		return err
	}
	m.detail.widget = w
	return nil
}

func (m *Module[T]) CloseDetail() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseDetailLocked()
	return nil
}

func (m *Module[T]) releaseDetailLocked() {
	if m.detail != nil && m.detail.widget != nil {
		m.detail.widget.Close()
	}
	m.detail = nil
}

func (m *Module[T]) RequestDelete(id string) error {
	if !m.spec.Deletable {
		return myerrors.ErrNotSupported
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return myerrors.ErrDisposed
	}
	if m.deleteState == DeleteDeleting {
		return myerrors.ErrBusy
	}
	if _, ok := m.find(id); !ok {
		return myerrors.ErrNotFound
	}
	m.deleteState = DeleteConfirming
	m.deleteID = id
	m.deleteMessage = ""
	return nil
}

// ConfirmDelete deletes the record under confirmation. A failure keeps the
// dialog in Confirming with the server message and leaves the list alone.
func (m *Module[T]) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case m.disposed:
		m.mu.Unlock()
		return myerrors.ErrDisposed
	case m.deleteState == DeleteDeleting:
		m.mu.Unlock()
		return myerrors.ErrBusy
	case m.deleteState != DeleteConfirming:
		m.mu.Unlock()
		return myerrors.ErrNoSelection
	}
	id := m.deleteID
	m.deleteState = DeleteDeleting
	m.deleteMessage = ""
	m.mu.Unlock()

	opCtx, cancel := m.opContext(ctx)
	defer cancel()
	env, err := m.spec.Service.Delete(opCtx, id)

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return myerrors.ErrDisposed
	}
	if err != nil {
		m.deleteState = DeleteConfirming
		m.deleteMessage = myerrors.ServerMessage(err, m.spec.Messages.DeleteFailed)
		m.mu.Unlock()
		m.mylog.Action("delete").Error("delete failed", err, "id", id)
		return err
	}
	if !env.IsSuccess {
		m.deleteState = DeleteConfirming
		m.deleteMessage = orDefault(env.Message, MsgDeleteRejected)
		m.mu.Unlock()
		return myerrors.ErrRejected
	}

	m.deleteState = DeleteClosed
	m.deleteID = ""
	deleted := m.spec.Messages.Deleted
	m.mu.Unlock()

	reloadErr := m.Reload(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return myerrors.ErrDisposed
	}
	m.successMessage = deleted
	m.schedule(m.env.Timing.SuccessMessageTTL, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.successMessage == deleted {
			m.successMessage = ""
		}
	})
	m.mylog.Action("delete").Info("deleted", "id", id)
	return reloadErr
}

func (m *Module[T]) CancelDelete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteState == DeleteDeleting {
		return myerrors.ErrBusy
	}
	m.deleteState = DeleteClosed
	m.deleteID = ""
	m.deleteMessage = ""
	return nil
}

func (m *Module[T]) SetFilter(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.spec.Filters {
		if f.Name == name {
			if value == "" {
				delete(m.filters, name)
			} else {
				m.filters[name] = value
			}
			return nil
		}
	}
	return fmt.Errorf("%w: filter %s", myerrors.ErrUnknownField, name)
}

func (m *Module[T]) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.filters)
}

func (m *Module[T]) visibleLocked() []T {
	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		keep := true
		for _, f := range m.spec.Filters {
			if v, ok := m.filters[f.Name]; ok && !f.Match(it, v) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

func (m *Module[T]) row(item T) Row[T] {
	return Row[T]{ID: item.GetID(), Item: item, Display: m.spec.Display(item, m.lookups)}
}

func (m *Module[T]) Snapshot() any {
	return m.View()
}

func (m *Module[T]) View() View[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	visible := m.visibleLocked()
	rows := make([]Row[T], 0, len(visible))
	for _, it := range visible {
		rows = append(rows, m.row(it))
	}

	v := View[T]{
		Module:         m.spec.Name,
		Title:          m.spec.Title,
		Load:           m.load,
		Items:          rows,
		Total:          len(m.items),
		Filters:        cloneFilters(m.filters),
		Lookups:        m.lookups.clone(),
		ErrorMessage:   m.errorMessage,
		SuccessMessage: m.successMessage,
		Deletable:      m.spec.Deletable,
	}

	if m.modal != ModalClosed {
		mv := &ModalView{
			State:     m.modal,
			Mode:      m.openMode,
			EditingID: m.editingID,
			Form:      m.form.View(),
		}
		if m.picker != nil {
			if pv, err := m.picker.View(); err == nil {
				mv.Map = &pv
			}
		}
		v.Modal = mv
	}

	if m.deleteState != DeleteClosed {
		dv := &DeleteView{State: m.deleteState, TargetID: m.deleteID, Message: m.deleteMessage}
		if item, ok := m.find(m.deleteID); ok && m.spec.Label != nil {
			dv.Label = m.spec.Label(item)
		}
		v.Delete = dv
	}

	if m.detail != nil {
		if item, ok := m.find(m.detail.id); ok {
			dv := &DetailView[T]{Row: m.row(item), Loading: m.detail.loading, Message: m.detail.message}
			if m.detail.widget != nil {
				if wv, err := m.detail.widget.View(); err == nil {
					dv.Map = &wv
				}
			}
			v.Detail = dv
		}
	}
	return v
}

// Dispose cancels in-flight requests, stops timers and closes every map
// widget. Later responses are dropped.
func (m *Module[T]) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	m.cancel()
	for _, t := range m.timers {
		t.Stop()
	}
	m.timers = nil
	m.releaseModalLocked()
	m.releaseDetailLocked()
	m.modal = ModalClosed
	m.deleteState = DeleteClosed
}

// WidgetCount reports open map widgets, for leak checks.
func (m *Module[T]) WidgetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	if m.picker != nil && !m.picker.Widget().Closed() {
		n++
	}
	if m.detail != nil && m.detail.widget != nil && !m.detail.widget.Closed() {
		n++
	}
	return n
}

func cloneFilters(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
