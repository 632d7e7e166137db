package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/healthrec/internal/record"
)

// Store is the persistence the form drives.
// *store.Store satisfies it.
type Store interface {
	Insert(ctx context.Context, e record.Entry) (int64, error)
	MarkCured(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, substr string) ([]record.HealthRecord, error)
}

// SessionGenerator produces the token a Form stamps on its log lines.
type SessionGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered session tokens.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// noSelection marks an un-highlighted grid.
const noSelection = -1

// Form is the input/search/grid state for one operator session.
type Form struct {
	// Input and search field text, as typed.
	Name    string
	Code    string
	Details string
	Query   string

	store    Store
	session  string
	logger   *slog.Logger
	rows     []record.HealthRecord
	selected int
	notices  []Notice
}

// Option configures a Form.
type Option func(*Form)

// WithSessionGenerator overrides how the session token is produced.
func WithSessionGenerator(gen SessionGenerator) Option {
	return func(f *Form) {
		f.session = gen.Generate()
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		f.logger = l
	}
}

// New creates an empty form backed by st.
func New(st Store, opts ...Option) *Form {
	f := &Form{
		store:    st,
		logger:   slog.Default(),
		rows:     []record.HealthRecord{},
		selected: noSelection,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.session == "" {
		f.session = UUIDv7Generator{}.Generate()
	}
	f.logger = f.logger.With("session", f.session)
	return f
}

// Session returns the session token.
func (f *Form) Session() string {
	return f.session
}

// Rows returns a copy of the grid rows currently displayed.
func (f *Form) Rows() []record.HealthRecord {
	rows := make([]record.HealthRecord, len(f.rows))
	copy(rows, f.rows)
	return rows
}

// Selected returns the highlighted row index and whether one is highlighted.
func (f *Form) Selected() (int, bool) {
	return f.selected, f.selected != noSelection
}

// Notices drains the queued notices, oldest first.
func (f *Form) Notices() []Notice {
	out := f.notices
	f.notices = nil
	return out
}

func (f *Form) notify(n Notice) {
	f.notices = append(f.notices, n)
}

// Add inserts a record from the input fields.
//
// Empty name or code (after trimming) queues an input error and leaves the
// fields as typed. On success all three fields are cleared. The grid is
// not refreshed.
func (f *Form) Add(ctx context.Context) error {
	entry := record.Entry{Name: f.Name, Code: f.Code, Details: f.Details}.Clean()
	if !entry.Complete() {
		f.logger.Debug("add rejected: missing required field")
		f.notify(noticeAddMissing)
		return nil
	}

	id, err := f.store.Insert(ctx, entry)
	if err != nil {
		return fmt.Errorf("add record: %w", err)
	}
	f.logger.Info("record added", "id", id)

	f.notify(noticeAdded)
	f.Name, f.Code, f.Details = "", "", ""
	return nil
}

// Search replaces the grid with every record whose name contains the
// search field text.
//
// Empty text (after trimming) queues an input error and leaves the grid
// unchanged. A successful search always clears the highlighted row.
func (f *Form) Search(ctx context.Context) error {
	query := record.CleanText(f.Query)
	if query == "" {
		f.logger.Debug("search rejected: empty query")
		f.notify(noticeSearchMissing)
		return nil
	}

	rows, err := f.store.SearchByName(ctx, query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	f.logger.Debug("search complete", "query", query, "rows", len(rows))

	f.rows = rows
	f.selected = noSelection
	return nil
}

// Show replaces the grid with rows without querying the store, and clears
// the highlight. Used to display records looked up by id.
func (f *Form) Show(rows []record.HealthRecord) {
	f.rows = make([]record.HealthRecord, len(rows))
	copy(f.rows, rows)
	f.selected = noSelection
}

// Select highlights the displayed row at index.
func (f *Form) Select(index int) error {
	if index < 0 || index >= len(f.rows) {
		return fmt.Errorf("select row %d: grid has %d rows", index, len(f.rows))
	}
	f.selected = index
	return nil
}

// SelectID highlights the displayed row with the given record id.
func (f *Form) SelectID(id int64) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.selected = i
			return nil
		}
	}
	return fmt.Errorf("select record %d: not in grid", id)
}

// ClearSelection removes the highlight.
func (f *Form) ClearSelection() {
	f.selected = noSelection
}

// MarkSelectedCured marks the highlighted row as Cured.
//
// The id and status come from the displayed row. A row that already reads
// Cured queues an info notice and the store is not called. After a
// successful update the search is re-run with the current search field,
// which may itself queue an input error if that field is now empty.
func (f *Form) MarkSelectedCured(ctx context.Context) error {
	if f.selected == noSelection {
		f.notify(noticeNoSelection)
		return nil
	}

	row := f.rows[f.selected]
	if row.Status == record.StatusCured {
		f.logger.Debug("mark cured skipped: already cured", "id", row.ID)
		f.notify(noticeAlreadyCured)
		return nil
	}

	if err := f.store.MarkCured(ctx, row.ID); err != nil {
		return fmt.Errorf("mark record %d cured: %w", row.ID, err)
	}
	f.logger.Info("record marked cured", "id", row.ID)
	f.notify(noticeCured)

	return f.Search(ctx)
}
