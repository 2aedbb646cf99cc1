package feature

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
)

type FormMode string

const (
	ModeAdd  FormMode = "add"
	ModeEdit FormMode = "edit"
)

type Field struct {
	Name    string
	Default string
	Rules   []Rule
	// AddOnly fields exist only while creating (user password).
	AddOnly bool
}

// Form holds raw string values as typed by the operator.
type Form struct {
	fields  []Field
	mode    FormMode
	values  map[string]string
	touched map[string]bool
}

type FormView struct {
	Mode   FormMode          `json:"mode"`
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
	Valid  bool              `json:"valid"`
}

func NewForm(fields []Field) *Form {
	f := &Form{fields: fields}
	f.Reset(ModeAdd)
	return f
}

func (f *Form) Mode() FormMode {
	return f.mode
}

// Reset restores defaults and clears touched state.
func (f *Form) Reset(mode FormMode) {
	f.mode = mode
	f.values = make(map[string]string)
	f.touched = make(map[string]bool)
	for _, fd := range f.active() {
		f.values[fd.Name] = fd.Default
	}
}

func (f *Form) field(name string) (Field, bool) {
	for _, fd := range f.active() {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

func (f *Form) active() []Field {
	out := make([]Field, 0, len(f.fields))
	for _, fd := range f.fields {
		if fd.AddOnly && f.mode != ModeAdd {
			continue
		}
		out = append(out, fd)
	}
	return out
}

// Set is an operator edit: it marks the field touched.
func (f *Form) Set(name, value string) error {
	if _, ok := f.field(name); !ok {
		return fmt.Errorf("%w: %s", myerrors.ErrUnknownField, name)
	}
	f.values[name] = value
	f.touched[name] = true
	return nil
}

// Patch writes values programmatically without touching. Unknown names are ignored.
func (f *Form) Patch(values map[string]string) {
	for k, v := range values {
		if _, ok := f.field(k); ok {
			f.values[k] = v
		}
	}
}

func (f *Form) Value(name string) string {
	return f.values[name]
}

func (f *Form) Trimmed(name string) string {
	return strings.TrimSpace(f.values[name])
}

func (f *Form) TouchAll() {
	for _, fd := range f.active() {
		f.touched[fd.Name] = true
	}
}

// Errors returns the first failing rule per field.
func (f *Form) Errors() map[string]string {
	errs := make(map[string]string)
	for _, fd := range f.active() {
		for _, rule := range fd.Rules {
			if msg := rule(f.values[fd.Name]); msg != "" {
				errs[fd.Name] = msg
				break
			}
		}
	}
	return errs
}

func (f *Form) Valid() bool {
	return len(f.Errors()) == 0
}

// View exposes errors of touched fields only.
func (f *Form) View() FormView {
	all := f.Errors()
	shown := make(map[string]string)
	for name, msg := range all {
		if f.touched[name] {
			shown[name] = msg
		}
	}
	return FormView{
		Mode:   f.mode,
		Values: maps.Clone(f.values),
		Errors: shown,
		Valid:  len(all) == 0,
	}
}

// Typed accessors used by payload builders. The form is validated first, so
// parse failures are reported as validation errors.

func (f *Form) Int(name string) (int, error) {
	v, err := strconv.Atoi(f.Trimmed(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a whole number", myerrors.ErrValidation, name)
	}
	return v, nil
}

func (f *Form) Float(name string) (float64, error) {
	v, ok := parseFinite(f.Trimmed(name))
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", myerrors.ErrValidation, name)
	}
	return v, nil
}

// Date converts a YYYY-MM-DD field into the backend timestamp string.
func (f *Form) Date(name string) (string, error) {
	ts, err := models.ParseDateInput(f.Value(name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}
	return ts.Wire(), nil
}

func (f *Form) Time(name string) (models.TimeOfDay, error) {
	t, err := models.TimeOfDayFromInput(f.Value(name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}
	return t, nil
}

// Optional returns nil for an empty field.
func (f *Form) Optional(name string) *string {
	v := f.Trimmed(name)
	if v == "" {
		return nil
	}
	return &v
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
