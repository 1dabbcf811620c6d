package store

import (
	"time"

	"github.com/terraincognita07/fema/internal/models"
	"github.com/terraincognita07/fema/internal/security"
)

// Session owns the decrypted in-memory buckets for one logged-in user.
// The encrypted persisted form stays the source of truth: buckets are
// loaded once when the session opens and rewritten whole after every
// mutation. Only one session is ever active at a time; serializing
// concurrent mutations is the caller's job.
type Session struct {
	Username string
	Location *time.Location

	store *Store

	Periods   models.PeriodLog
	Notes     models.NoteLog
	Intimacy  models.IntimacyLog
	Visits    models.MedicalVisitLog
	Moods     models.MoodLog
	Pregnancy models.PregnancyRecord
}

// OpenSession decrypts every data bucket into memory. Buckets that are
// missing or fail to decrypt come back as empty maps, never as errors.
func OpenSession(backend KeyValue, key []byte, username string, location *time.Location) (*Session, error) {
	cipher, err := security.NewBucketCipher(key)
	if err != nil {
		return nil, err
	}
	if location == nil {
		location = time.Local
	}

	session := &Session{
		Username: username,
		Location: location,
		store:    NewStore(backend, cipher),
		Periods:  make(models.PeriodLog),
		Notes:    make(models.NoteLog),
		Intimacy: make(models.IntimacyLog),
		Visits:   make(models.MedicalVisitLog),
		Moods:    make(models.MoodLog),
	}

	if err := session.store.LoadData(models.BucketPeriod, &session.Periods); err != nil {
		return nil, err
	}
	if err := session.store.LoadData(models.BucketNotes, &session.Notes); err != nil {
		return nil, err
	}
	if err := session.store.LoadData(models.BucketIntimacy, &session.Intimacy); err != nil {
		return nil, err
	}
	if err := session.store.LoadData(models.BucketMedical, &session.Visits); err != nil {
		return nil, err
	}
	if err := session.store.LoadData(models.BucketMood, &session.Moods); err != nil {
		return nil, err
	}
	if err := session.store.LoadData(models.BucketPregnancy, &session.Pregnancy); err != nil {
		return nil, err
	}

	// LoadData leaves maps nil-safe but a corrupt blob may have
	// replaced one with nil.
	if session.Periods == nil {
		session.Periods = make(models.PeriodLog)
	}
	if session.Notes == nil {
		session.Notes = make(models.NoteLog)
	}
	if session.Intimacy == nil {
		session.Intimacy = make(models.IntimacyLog)
	}
	if session.Visits == nil {
		session.Visits = make(models.MedicalVisitLog)
	}
	if session.Moods == nil {
		session.Moods = make(models.MoodLog)
	}

	return session, nil
}

// The Save methods take the already-mutated bucket and swap it into the
// session only after the encrypted write succeeds. A failed save leaves
// the in-memory state exactly as it was, so callers mutate a copy and
// hand it over.

func (session *Session) SavePeriods(updated models.PeriodLog) error {
	if err := session.store.SaveData(models.BucketPeriod, updated); err != nil {
		return err
	}
	session.Periods = updated
	return nil
}

func (session *Session) SaveNotes(updated models.NoteLog) error {
	if err := session.store.SaveData(models.BucketNotes, updated); err != nil {
		return err
	}
	session.Notes = updated
	return nil
}

func (session *Session) SaveIntimacy(updated models.IntimacyLog) error {
	if err := session.store.SaveData(models.BucketIntimacy, updated); err != nil {
		return err
	}
	session.Intimacy = updated
	return nil
}

func (session *Session) SaveVisits(updated models.MedicalVisitLog) error {
	if err := session.store.SaveData(models.BucketMedical, updated); err != nil {
		return err
	}
	session.Visits = updated
	return nil
}

func (session *Session) SaveMoods(updated models.MoodLog) error {
	if err := session.store.SaveData(models.BucketMood, updated); err != nil {
		return err
	}
	session.Moods = updated
	return nil
}

func (session *Session) SavePregnancy(updated models.PregnancyRecord) error {
	if err := session.store.SaveData(models.BucketPregnancy, updated); err != nil {
		return err
	}
	session.Pregnancy = updated
	return nil
}

// ClearAll erases every persisted bucket and resets the in-memory maps.
func (session *Session) ClearAll() error {
	if err := session.store.ClearAll(); err != nil {
		return err
	}
	session.Periods = make(models.PeriodLog)
	session.Notes = make(models.NoteLog)
	session.Intimacy = make(models.IntimacyLog)
	session.Visits = make(models.MedicalVisitLog)
	session.Moods = make(models.MoodLog)
	session.Pregnancy = models.PregnancyRecord{}
	return nil
}
