package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/repositories"
	"github.com/noriyal/madrasa-portal/internal/pkg/academic"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
)

// FirstRoll seeds roll assignment on an empty collection.
const FirstRoll = 10001

// Store owns the three portal collections: students, settings and
// marks. It is constructed once at process start by loading from the
// key-value backend, and every mutation rewrites the affected
// collection's whole blob under its fixed key.
//
// All operations are serialized by a single mutex, so roll assignment
// and whole-collection saves cannot race under concurrent callers.
// The three keys are still saved independently; a crash between two
// saves can leave them mutually inconsistent, which is the accepted
// durability model.
type Store struct {
	mu     sync.RWMutex
	kv     repositories.KV
	logger zerolog.Logger

	now   func() time.Time
	newID func() string

	students []models.Student
	settings models.PortalSettings
	marks    models.MarksBook
}

// Open loads the three collections from kv. A missing key yields the
// empty collection (or built-in default settings); an unreadable blob
// is logged and treated as empty rather than aborting startup.
func Open(ctx context.Context, kv repositories.KV, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		kv:       kv,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		students: []models.Student{},
		settings: models.DefaultSettings(),
		marks:    models.MarksBook{},
	}

	if err := loadCollection(ctx, s, repositories.KeyStudents, &s.students); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, s, repositories.KeyConfig, &s.settings); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, s, repositories.KeyMarks, &s.marks); err != nil {
		return nil, err
	}

	logger.Info().
		Int("students", len(s.students)).
		Int("marksRecords", len(s.marks)).
		Msg("Record store loaded")
	return s, nil
}

// loadCollection reads one key into dst, leaving dst's default value
// in place when the key is absent or its blob cannot be decoded. The
// decode goes through a scratch value: a blob that fails mid-decode
// must not leave dst partially filled.
func loadCollection[T any](ctx context.Context, s *Store, key string, dst *T) error {
	blob, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !found {
		return nil
	}
	var decoded T
	if err := json.Unmarshal(blob, &decoded); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Stored collection unreadable, starting empty")
		return nil
	}
	*dst = decoded
	return nil
}

// CreateAdmission appends a new online admission. The store assigns
// id, roll, status, session and the localized admission date; the
// caller supplies everything else already validated. Returns the
// completed record so the assigned roll can be shown to the applicant.
func (s *Store) CreateAdmission(ctx context.Context, student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	student.ID = s.newID()
	student.Roll = s.nextRollLocked()
	student.Status = models.StatusPending
	student.Session = academic.Session(now)
	student.Date = academic.LocalDate(now)

	next := append(append([]models.Student{}, s.students...), student)
	if err := s.saveStudentsLocked(ctx, next); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// nextRollLocked computes max existing roll + 1, or FirstRoll when the
// collection is empty. Caller must hold the mutex.
func (s *Store) nextRollLocked() int {
	if len(s.students) == 0 {
		return FirstRoll
	}
	max := s.students[0].Roll
	for _, st := range s.students[1:] {
		if st.Roll > max {
			max = st.Roll
		}
	}
	return max + 1
}

// UpsertManual applies an operator's manual entry. An existing record
// with the same roll is overwritten in place (supplied fields only,
// id preserved); otherwise a new Verified record is created with the
// current session and date. Returns the resulting record and whether
// it was newly created.
func (s *Store) UpsertManual(ctx context.Context, draft models.StudentDraft) (models.Student, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Student{}, s.students...)
	for i := range next {
		if next[i].Roll == draft.Roll {
			draft.Apply(&next[i])
			if err := s.saveStudentsLocked(ctx, next); err != nil {
				return models.Student{}, false, err
			}
			return next[i], false, nil
		}
	}

	now := s.now()
	student := models.Student{
		ID:      s.newID(),
		Roll:    draft.Roll,
		Status:  models.StatusVerified,
		Session: academic.Session(now),
		Date:    academic.LocalDate(now),
	}
	draft.Apply(&student)

	next = append(next, student)
	if err := s.saveStudentsLocked(ctx, next); err != nil {
		return models.Student{}, false, err
	}
	return student, true, nil
}

// Verify flips the record with the given id to Verified. Verifying an
// already-Verified record is a no-op in effect.
func (s *Store) Verify(ctx context.Context, id string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Student{}, s.students...)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = models.StatusVerified
			if err := s.saveStudentsLocked(ctx, next); err != nil {
				return models.Student{}, err
			}
			return next[i], nil
		}
	}
	return models.Student{}, apperrors.ErrStudentNotFound
}

// Delete permanently removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Student, 0, len(s.students))
	found := false
	for _, st := range s.students {
		if st.ID == id {
			found = true
			continue
		}
		next = append(next, st)
	}
	if !found {
		return apperrors.ErrStudentNotFound
	}
	return s.saveStudentsLocked(ctx, next)
}

// Students returns a copy of the full collection.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Student{}, s.students...)
}

// FindByRoll returns the student with an exact roll match.
func (s *Store) FindByRoll(roll int) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.Roll == roll {
			return st, true
		}
	}
	return models.Student{}, false
}

// FindByReg returns the first student whose registration number
// matches. Registration numbers are not guaranteed unique; first match
// wins, as in the original portal.
func (s *Store) FindByReg(reg string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.Reg == reg {
			return st, true
		}
	}
	return models.Student{}, false
}

// LoadMarks returns the mapping stored for a composite marks key. The
// boolean reports whether the key was ever saved; an absent key yields
// an empty mapping so editors can start from a blank sheet.
func (s *Store) LoadMarks(key string) (models.SubjectMarks, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, ok := s.marks[key]
	if !ok {
		return models.SubjectMarks{}, false
	}
	out := make(models.SubjectMarks, len(existing))
	for subject, score := range existing {
		out[subject] = score
	}
	return out, true
}

// SaveMarks overwrites the full mapping for one composite key, leaving
// every other key untouched.
func (s *Store) SaveMarks(ctx context.Context, key string, marks models.SubjectMarks) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(models.MarksBook, len(s.marks)+1)
	for k, v := range s.marks {
		next[k] = v
	}
	entry := make(models.SubjectMarks, len(marks))
	for subject, score := range marks {
		entry[subject] = score
	}
	next[key] = entry

	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding marks: %w", err)
	}
	if err := s.kv.Put(ctx, repositories.KeyMarks, blob); err != nil {
		return fmt.Errorf("saving marks: %w", err)
	}
	s.marks = next
	return nil
}

// Settings returns the current configuration singleton.
func (s *Store) Settings() models.PortalSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SaveSettings replaces the configuration wholesale.
func (s *Store) SaveSettings(ctx context.Context, settings models.PortalSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := s.kv.Put(ctx, repositories.KeyConfig, blob); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.settings = settings
	return nil
}

// Backup returns copies of all three collections for export.
func (s *Store) Backup() ([]models.Student, models.PortalSettings, models.MarksBook) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := append([]models.Student{}, s.students...)
	marks := make(models.MarksBook, len(s.marks))
	for key, entry := range s.marks {
		copied := make(models.SubjectMarks, len(entry))
		for subject, score := range entry {
			copied[subject] = score
		}
		marks[key] = copied
	}
	return students, s.settings, marks
}

// Restore replaces all three collections with the supplied backup.
// Student id and roll uniqueness are validated first, and the three
// keys are rewritten in a single transaction so a failed restore never
// leaves the backend half-keyed.
func (s *Store) Restore(ctx context.Context, students []models.Student, settings models.PortalSettings, marks models.MarksBook) error {
	if err := validateUniqueness(students); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if students == nil {
		students = []models.Student{}
	}
	if marks == nil {
		marks = models.MarksBook{}
	}

	studentsBlob, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("encoding students: %w", err)
	}
	settingsBlob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	marksBlob, err := json.Marshal(marks)
	if err != nil {
		return fmt.Errorf("encoding marks: %w", err)
	}

	err = s.kv.PutAll(ctx, map[string][]byte{
		repositories.KeyStudents: studentsBlob,
		repositories.KeyConfig:   settingsBlob,
		repositories.KeyMarks:    marksBlob,
	})
	if err != nil {
		return fmt.Errorf("restoring collections: %w", err)
	}

	s.students = students
	s.settings = settings
	s.marks = marks
	return nil
}

// validateUniqueness rejects a backup containing duplicate student ids
// or rolls.
func validateUniqueness(students []models.Student) error {
	ids := make(map[string]struct{}, len(students))
	rolls := make(map[int]struct{}, len(students))
	for _, st := range students {
		if _, dup := ids[st.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", apperrors.ErrBackupInvalid, st.ID)
		}
		if _, dup := rolls[st.Roll]; dup {
			return fmt.Errorf("%w: duplicate roll %d", apperrors.ErrBackupInvalid, st.Roll)
		}
		ids[st.ID] = struct{}{}
		rolls[st.Roll] = struct{}{}
	}
	return nil
}

// saveStudentsLocked persists the replacement collection and swaps it
// into memory only after the write succeeds, so a failed save leaves
// prior state untouched. Caller must hold the mutex.
func (s *Store) saveStudentsLocked(ctx context.Context, next []models.Student) error {
	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding students: %w", err)
	}
	if err := s.kv.Put(ctx, repositories.KeyStudents, blob); err != nil {
		return fmt.Errorf("saving students: %w", err)
	}
	s.students = next
	return nil
}
