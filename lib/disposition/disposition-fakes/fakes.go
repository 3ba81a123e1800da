// Package dispositionfakes хранилища входящих писем и диспозиций в памяти для тестов
package dispositionfakes

import (
	"office-admin-backend/models"
	incomingletterapimodels "office-admin-backend/models/api/incoming-letter"
	dbmodels "office-admin-backend/models/db"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Letters struct {
	Recs map[string]*dbmodels.IncomingLetter
}

func NewLetters() *Letters {
	return &Letters{Recs: map[string]*dbmodels.IncomingLetter{}}
}

func (f *Letters) Create(rec dbmodels.IncomingLetter) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Letters) GetByID(id string) (*dbmodels.IncomingLetter, error) {
	rec, ok := f.Recs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *Letters) GetForUpdate(id string) (*dbmodels.IncomingLetter, error) {
	return f.GetByID(id)
}

func (f *Letters) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.Recs[id]
	if !ok {
		return nil
	}
	if status, ok := updMap["status"].(models.DocumentStatus); ok {
		rec.Status = status
	}
	return nil
}

func (f *Letters) SetStatus(id string, from, to models.DocumentStatus) (bool, error) {
	rec, ok := f.Recs[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	return true, nil
}

func (f *Letters) List(filter incomingletterapimodels.IncomingLetterFilter) ([]dbmodels.IncomingLetter, int64, error) {
	list := []dbmodels.IncomingLetter{}
	for _, rec := range f.Recs {
		if filter.Status == "" || rec.Status == filter.Status {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ReceivedAt.After(list[b].ReceivedAt) })
	return list, int64(len(list)), nil
}

type Dispositions struct {
	Recs map[string]*dbmodels.Disposition
	seq  int
}

func NewDispositions() *Dispositions {
	return &Dispositions{Recs: map[string]*dbmodels.Disposition{}}
}

func (f *Dispositions) Create(rec dbmodels.Disposition) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.seq++
	rec.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Dispositions) GetByID(id string) (*dbmodels.Disposition, error) {
	rec, ok := f.Recs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *Dispositions) UpdateStatus(id string, from models.DispositionStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.Recs[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.DispositionStatus)
		case "response":
			rec.Response = value.(string)
		case "read_at":
			at := value.(time.Time)
			rec.ReadAt = &at
		case "started_at":
			at := value.(time.Time)
			rec.StartedAt = &at
		case "completed_at":
			at := value.(time.Time)
			rec.CompletedAt = &at
		}
	}
	return true, nil
}

func (f *Dispositions) ListByLetter(letterID string) ([]dbmodels.Disposition, error) {
	list := []dbmodels.Disposition{}
	for _, rec := range f.Recs {
		if rec.IncomingLetterID == letterID {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].CreatedAt.Before(list[b].CreatedAt) })
	return list, nil
}

func (f *Dispositions) ListForUser(toUserID string, status models.DispositionStatus, page, limit int) ([]dbmodels.Disposition, int64, error) {
	list := []dbmodels.Disposition{}
	for _, rec := range f.Recs {
		if rec.ToUserID == toUserID && (status == "" || rec.Status == status) {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].CreatedAt.After(list[b].CreatedAt) })
	return list, int64(len(list)), nil
}

func (f *Dispositions) ListOverdue(now time.Time, limit int) ([]dbmodels.Disposition, error) {
	list := []dbmodels.Disposition{}
	for _, rec := range f.Recs {
		if rec.IsOverdue(now) && rec.OverdueNotifiedAt == nil {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Deadline.Before(*list[b].Deadline) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *Dispositions) SetOverdueNotified(id string, at time.Time) (bool, error) {
	rec, ok := f.Recs[id]
	if !ok || rec.OverdueNotifiedAt != nil {
		return false, nil
	}
	rec.OverdueNotifiedAt = &at
	return true, nil
}
