package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/repositories"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
)

// memoryKV is an in-process KV backend for tests.
type memoryKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, blob...), true, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("backend unavailable")
	}
	m.data[key] = append([]byte{}, value...)
	return nil
}

func (m *memoryKV) PutAll(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("backend unavailable")
	}
	for key, value := range entries {
		m.data[key] = append([]byte{}, value...)
	}
	return nil
}

func (m *memoryKV) Close() error { return nil }

func newTestStore(t *testing.T, kv repositories.KV) *Store {
	t.Helper()
	s, err := Open(context.Background(), kv, zerolog.Nop())
	require.NoError(t, err)

	// Deterministic clock and id sequence for assertions.
	fixed := time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return s
}

func sampleAdmission(nameBN string) models.Student {
	return models.Student{
		NameBN:    nameBN,
		NameEN:    "Rahim Uddin",
		Class:     "হিফজ বিভাগ",
		Reg:       "20151234567890123",
		FName:     "করিম উদ্দিন",
		MName:     "আমেনা বেগম",
		Photo:     "data:image/jpeg;base64,xxxx",
		PayMethod: "bKash",
		Trx:       "TRX123456",
	}
}

func TestOpenEmptyBackend(t *testing.T) {
	s := newTestStore(t, newMemoryKV())

	assert.Empty(t, s.Students())
	assert.Equal(t, models.DefaultSettings(), s.Settings())
	_, published := s.LoadMarks("10001_2025-26")
	assert.False(t, published)
}

func TestOpenToleratesCorruptBlob(t *testing.T) {
	kv := newMemoryKV()
	kv.data[repositories.KeyStudents] = []byte("{not json")

	s, err := Open(context.Background(), kv, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, s.Students())
}

func TestOpenDiscardsPartiallyDecodableBlob(t *testing.T) {
	kv := newMemoryKV()
	// Valid JSON with a wrong field type: decoding fails partway and
	// half-filled records (empty ids included) must not survive.
	kv.data[repositories.KeyStudents] = []byte(`[{"id":123,"roll":10001,"nameBN":"ক"},{"id":"ok","roll":10002,"nameBN":"খ"}]`)
	kv.data[repositories.KeyConfig] = []byte(`{"logo":123}`)

	s, err := Open(context.Background(), kv, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, s.Students())
	assert.Equal(t, models.DefaultSettings(), s.Settings())
}

func TestCreateAdmissionAssignsRollsFromFirstRoll(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	first, err := s.CreateAdmission(ctx, sampleAdmission("রহিম উদ্দিন"))
	require.NoError(t, err)
	second, err := s.CreateAdmission(ctx, sampleAdmission("জাকির হোসেন"))
	require.NoError(t, err)

	assert.Equal(t, FirstRoll, first.Roll)
	assert.Equal(t, FirstRoll+1, second.Roll)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, "2025-26", first.Session)
	assert.Equal(t, "১/৭/২০২৫", first.Date)
}

func TestCreateAdmissionRollsContinueAfterGaps(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	a, err := s.CreateAdmission(ctx, sampleAdmission("ক"))
	require.NoError(t, err)
	b, err := s.CreateAdmission(ctx, sampleAdmission("খ"))
	require.NoError(t, err)

	// Removing the highest roll must not cause reuse of mid-range ones.
	require.NoError(t, s.Delete(ctx, a.ID))
	c, err := s.CreateAdmission(ctx, sampleAdmission("গ"))
	require.NoError(t, err)
	assert.Equal(t, b.Roll+1, c.Roll)
}

func TestCreateAdmissionFailedSaveLeavesStateUntouched(t *testing.T) {
	kv := newMemoryKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	kv.failPut = true
	_, err := s.CreateAdmission(ctx, sampleAdmission("রহিম উদ্দিন"))
	require.Error(t, err)
	assert.Empty(t, s.Students())

	kv.failPut = false
	st, err := s.CreateAdmission(ctx, sampleAdmission("রহিম উদ্দিন"))
	require.NoError(t, err)
	assert.Equal(t, FirstRoll, st.Roll)
}

func TestConcurrentAdmissionsGetDistinctRolls(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.CreateAdmission(ctx, sampleAdmission("সমান্তরাল"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seenRolls := map[int]bool{}
	seenIDs := map[string]bool{}
	for _, st := range s.Students() {
		assert.False(t, seenRolls[st.Roll], "roll %d assigned twice", st.Roll)
		assert.False(t, seenIDs[st.ID], "id %s assigned twice", st.ID)
		seenRolls[st.Roll] = true
		seenIDs[st.ID] = true
	}
	assert.Len(t, seenRolls, n)
}

func TestUpsertManualCreatesVerifiedRecord(t *testing.T) {
	s := newTestStore(t, newMemoryKV())

	st, created, err := s.UpsertManual(context.Background(), models.StudentDraft{
		Roll:   20001,
		NameBN: "রহিম উদ্দিন",
		Class:  "নাজেরা বিভাগ",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 20001, st.Roll)
	assert.Equal(t, models.StatusVerified, st.Status)
	assert.Equal(t, "2025-26", st.Session)
	assert.NotEmpty(t, st.ID)
	assert.Empty(t, st.Photo)
}

func TestUpsertManualOverwritesExistingByRoll(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	original, err := s.CreateAdmission(ctx, sampleAdmission("রহিম উদ্দিন"))
	require.NoError(t, err)

	branch := "শহর শাখা"
	updated, created, err := s.UpsertManual(ctx, models.StudentDraft{
		Roll:   original.Roll,
		NameBN: "রহিম উদ্দিন (সংশোধিত)",
		Class:  original.Class,
		Branch: &branch,
	})
	require.NoError(t, err)
	assert.False(t, created)

	// Identity and lifecycle survive the overwrite.
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Roll, updated.Roll)
	assert.Equal(t, original.Status, updated.Status)
	assert.Equal(t, original.Session, updated.Session)

	// Supplied fields replace, omitted optionals stay.
	assert.Equal(t, "রহিম উদ্দিন (সংশোধিত)", updated.NameBN)
	assert.Equal(t, branch, updated.Branch)
	assert.Equal(t, original.Reg, updated.Reg)
	assert.Equal(t, original.FName, updated.FName)

	assert.Len(t, s.Students(), 1)
}

func TestVerify(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	a, err := s.CreateAdmission(ctx, sampleAdmission("ক"))
	require.NoError(t, err)
	b, err := s.CreateAdmission(ctx, sampleAdmission("খ"))
	require.NoError(t, err)

	verified, err := s.Verify(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, verified.Status)

	// Re-verifying is harmless; other records stay pending.
	again, err := s.Verify(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, again.Status)

	other, ok := s.FindByRoll(b.Roll)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, other.Status)

	_, err = s.Verify(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	a, err := s.CreateAdmission(ctx, sampleAdmission("ক"))
	require.NoError(t, err)
	b, err := s.CreateAdmission(ctx, sampleAdmission("খ"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.Len(t, s.Students(), 1)
	_, ok := s.FindByRoll(b.Roll)
	assert.True(t, ok)

	assert.ErrorIs(t, s.Delete(ctx, a.ID), apperrors.ErrStudentNotFound)
}

func TestFindByRegReturnsFirstMatch(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	first, err := s.CreateAdmission(ctx, sampleAdmission("ক"))
	require.NoError(t, err)
	_, err = s.CreateAdmission(ctx, sampleAdmission("খ"))
	require.NoError(t, err)

	found, ok := s.FindByReg(first.Reg)
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	_, ok = s.FindByReg("00000000000000000")
	assert.False(t, ok)
}

func TestMarksRoundTrip(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	key := "10001_2025-26"
	sheet := models.SubjectMarks{"বাংলা": "85", "গণিত": "90"}
	require.NoError(t, s.SaveMarks(ctx, key, sheet))

	loaded, published := s.LoadMarks(key)
	assert.True(t, published)
	assert.Equal(t, sheet, loaded)

	// Mutating the returned copy must not leak into the store.
	loaded["বাংলা"] = "0"
	reloaded, _ := s.LoadMarks(key)
	assert.Equal(t, "85", reloaded["বাংলা"])
}

func TestSaveMarksLeavesOtherKeysUntouched(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	require.NoError(t, s.SaveMarks(ctx, "10001_2025-26", models.SubjectMarks{"বাংলা": "85"}))
	require.NoError(t, s.SaveMarks(ctx, "10001_2026-27", models.SubjectMarks{"বাংলা": "70"}))

	prev, published := s.LoadMarks("10001_2025-26")
	require.True(t, published)
	assert.Equal(t, "85", prev["বাংলা"])
}

func TestSaveMarksEmptySheetStillPublishes(t *testing.T) {
	s := newTestStore(t, newMemoryKV())

	key := "10002_2025-26"
	require.NoError(t, s.SaveMarks(context.Background(), key, models.SubjectMarks{}))
	sheet, published := s.LoadMarks(key)
	assert.True(t, published)
	assert.Empty(t, sheet)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t, newMemoryKV())

	settings := s.Settings()
	settings.Notice = "পরীক্ষার ফলাফল প্রকাশিত হয়েছে।"
	settings.HeadNum = "01700-000000"
	require.NoError(t, s.SaveSettings(context.Background(), settings))
	assert.Equal(t, settings, s.Settings())
}

func TestPersistenceAcrossReopen(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()

	s := newTestStore(t, kv)
	admitted, err := s.CreateAdmission(ctx, sampleAdmission("রহিম উদ্দিন"))
	require.NoError(t, err)
	require.NoError(t, s.SaveMarks(ctx, "10001_2025-26", models.SubjectMarks{"বাংলা": "85"}))

	settings := s.Settings()
	settings.Notice = "নতুন শিক্ষাবর্ষের ক্লাস শুরু।"
	require.NoError(t, s.SaveSettings(ctx, settings))

	reopened, err := Open(ctx, kv, zerolog.Nop())
	require.NoError(t, err)

	students := reopened.Students()
	require.Len(t, students, 1)
	assert.Equal(t, admitted, students[0])
	assert.Equal(t, settings, reopened.Settings())
	sheet, published := reopened.LoadMarks("10001_2025-26")
	assert.True(t, published)
	assert.Equal(t, "85", sheet["বাংলা"])
}

func TestBackupReturnsCopies(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	_, err := s.CreateAdmission(ctx, sampleAdmission("ক"))
	require.NoError(t, err)
	require.NoError(t, s.SaveMarks(ctx, "10001_2025-26", models.SubjectMarks{"বাংলা": "85"}))

	students, _, marks := s.Backup()
	students[0].NameBN = "বিকৃত"
	marks["10001_2025-26"]["বাংলা"] = "0"

	assert.Equal(t, "ক", s.Students()[0].NameBN)
	sheet, _ := s.LoadMarks("10001_2025-26")
	assert.Equal(t, "85", sheet["বাংলা"])
}

func TestRestoreReplacesEverything(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	_, err := s.CreateAdmission(ctx, sampleAdmission("পুরনো"))
	require.NoError(t, err)

	students := []models.Student{
		{ID: "restored-1", Roll: 30001, NameBN: "আমদানি", Class: "হিফজ বিভাগ", Status: models.StatusVerified, Session: "2024-25"},
	}
	settings := models.DefaultSettings()
	settings.Notice = "পুনরুদ্ধারকৃত নোটিশ"
	marks := models.MarksBook{"30001_2024-25": {"বাংলা": "77"}}

	require.NoError(t, s.Restore(ctx, students, settings, marks))

	got := s.Students()
	require.Len(t, got, 1)
	assert.Equal(t, "restored-1", got[0].ID)
	assert.Equal(t, settings, s.Settings())
	sheet, published := s.LoadMarks("30001_2024-25")
	assert.True(t, published)
	assert.Equal(t, "77", sheet["বাংলা"])
}

func TestRestoreRejectsDuplicates(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()
	settings := models.DefaultSettings()

	dupID := []models.Student{
		{ID: "x", Roll: 10001, NameBN: "ক"},
		{ID: "x", Roll: 10002, NameBN: "খ"},
	}
	assert.ErrorIs(t, s.Restore(ctx, dupID, settings, nil), apperrors.ErrBackupInvalid)

	dupRoll := []models.Student{
		{ID: "a", Roll: 10001, NameBN: "ক"},
		{ID: "b", Roll: 10001, NameBN: "খ"},
	}
	assert.ErrorIs(t, s.Restore(ctx, dupRoll, settings, nil), apperrors.ErrBackupInvalid)
}

func TestRestoreNilCollectionsBecomeEmpty(t *testing.T) {
	s := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	_, err := s.CreateAdmission(ctx, sampleAdmission("পুরনো"))
	require.NoError(t, err)
	require.NoError(t, s.SaveMarks(ctx, "10001_2025-26", models.SubjectMarks{"বাংলা": "85"}))

	require.NoError(t, s.Restore(ctx, nil, models.DefaultSettings(), nil))
	assert.Empty(t, s.Students())
	_, published := s.LoadMarks("10001_2025-26")
	assert.False(t, published)
}
