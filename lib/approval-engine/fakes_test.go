package approvalengine

import (
	"fmt"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	"sort"

	"github.com/google/uuid"
)

// callLog общий журнал вызовов хранилищ, проверяет порядок блокировок
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	if l != nil {
		l.calls = append(l.calls, call)
	}
}

type fakeStepStore struct {
	steps map[string]*dbmodels.ApprovalStep
	log   *callLog
}

func newFakeStepStore() *fakeStepStore {
	return &fakeStepStore{steps: map[string]*dbmodels.ApprovalStep{}}
}

func (f *fakeStepStore) CreateBatch(list []dbmodels.ApprovalStep) error {
	for _, rec := range list {
		rec := rec
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		for _, existed := range f.steps {
			if existed.DocumentKind == rec.DocumentKind && existed.DocumentID == rec.DocumentID && existed.StepOrder == rec.StepOrder {
				return fmt.Errorf("duplicate step order %v", rec.StepOrder)
			}
		}
		f.steps[rec.ID] = &rec
	}
	return nil
}

func (f *fakeStepStore) GetByID(id string) (*dbmodels.ApprovalStep, error) {
	f.log.add("step.get")
	return f.get(id)
}

func (f *fakeStepStore) GetForUpdate(id string) (*dbmodels.ApprovalStep, error) {
	f.log.add("step.lock")
	return f.get(id)
}

func (f *fakeStepStore) get(id string) (*dbmodels.ApprovalStep, error) {
	rec, ok := f.steps[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *fakeStepStore) List(kind models.DocumentKind, documentID string) ([]dbmodels.ApprovalStep, error) {
	list := []dbmodels.ApprovalStep{}
	for _, rec := range f.steps {
		if rec.DocumentKind == kind && rec.DocumentID == documentID {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].StepOrder < list[b].StepOrder })
	return list, nil
}

func (f *fakeStepStore) UpdateStatus(id string, from models.ApprovalStepStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.steps[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.ApprovalStepStatus)
	}
	if notes, ok := updMap["notes"]; ok {
		rec.Notes = notes.(string)
	}
	if signature, ok := updMap["signature"]; ok {
		rec.Signature = signature.(string)
	}
	return true, nil
}

func (f *fakeStepStore) DeleteByDocument(kind models.DocumentKind, documentID string) error {
	for id, rec := range f.steps {
		if rec.DocumentKind == kind && rec.DocumentID == documentID {
			delete(f.steps, id)
		}
	}
	return nil
}

func (f *fakeStepStore) ListPendingForUser(userID string) ([]dbmodels.ApprovalStep, error) {
	list := []dbmodels.ApprovalStep{}
	for _, rec := range f.steps {
		if rec.UserID == userID && rec.Status == models.StepPending {
			list = append(list, *rec)
		}
	}
	return list, nil
}

type fakeHistoryStore struct {
	list []dbmodels.ApprovalHistory
}

func (f *fakeHistoryStore) Create(rec dbmodels.ApprovalHistory) (string, error) {
	rec.ID = uuid.NewString()
	f.list = append(f.list, rec)
	return rec.ID, nil
}

func (f *fakeHistoryStore) List(kind models.DocumentKind, documentID string) ([]dbmodels.ApprovalHistory, error) {
	list := []dbmodels.ApprovalHistory{}
	for _, rec := range f.list {
		if rec.DocumentKind == kind && rec.DocumentID == documentID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeHistoryStore) DeleteByDocument(kind models.DocumentKind, documentID string) error {
	list := []dbmodels.ApprovalHistory{}
	for _, rec := range f.list {
		if rec.DocumentKind != kind || rec.DocumentID != documentID {
			list = append(list, rec)
		}
	}
	f.list = list
	return nil
}

type fakeUserStore struct {
	users map[string]dbmodels.User
}

func (f *fakeUserStore) Create(rec dbmodels.User) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.users[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeUserStore) Update(userID string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeUserStore) GetByID(userID string) (*dbmodels.User, error) {
	rec, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*dbmodels.User, error) {
	return nil, nil
}

func (f *fakeUserStore) List(search string, page, limit int) ([]dbmodels.User, error) {
	return nil, nil
}

func (f *fakeUserStore) ListByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}

type fakeDocumentSource struct {
	kind   models.DocumentKind
	labels models.AggregateLabels
	docs   map[string]*Document
	log    *callLog
}

func (f *fakeDocumentSource) Labels() models.AggregateLabels {
	return f.labels
}

func (f *fakeDocumentSource) Lock(id string) (*Document, error) {
	f.log.add("document.lock")
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	result := *doc
	return &result, nil
}

func (f *fakeDocumentSource) SetStatus(id string, status models.DocumentStatus) error {
	f.docs[id].Status = status
	return nil
}

func (f *fakeDocumentSource) Delete(id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentSource) ActionURL(id string) string {
	return "/" + string(f.kind) + "/" + id
}

type testEnv struct {
	engine   Provider
	steps    *fakeStepStore
	history  *fakeHistoryStore
	users    *fakeUserStore
	letters  *fakeDocumentSource
	outgoing *fakeDocumentSource
	log      *callLog
	ownerID  string
}

func newTestEnv() *testEnv {
	log := &callLog{}
	env := &testEnv{
		log:     log,
		steps:   newFakeStepStore(),
		history: &fakeHistoryStore{},
		users:   &fakeUserStore{users: map[string]dbmodels.User{}},
		letters: &fakeDocumentSource{
			kind:   models.LetterKind,
			labels: models.LetterLabels,
			docs:   map[string]*Document{},
			log:    log,
		},
		outgoing: &fakeDocumentSource{
			kind:   models.OutgoingLetterKind,
			labels: models.OutgoingLetterLabels,
			docs:   map[string]*Document{},
			log:    log,
		},
	}
	env.steps.log = log
	env.ownerID = env.addUser("Автор")
	stores := Stores{
		Steps:   env.steps,
		History: env.history,
		Users:   env.users,
		Documents: map[models.DocumentKind]DocumentSource{
			models.LetterKind:         env.letters,
			models.OutgoingLetterKind: env.outgoing,
		},
	}
	env.engine = NewInstance(stores, func(fn func(s Stores) error) error {
		return fn(stores)
	})
	return env
}

func (e *testEnv) addUser(name string) string {
	id, _ := e.users.Create(dbmodels.User{FirstName: name, IsActive: true, Role: models.StaffRole})
	return id
}

func (e *testEnv) addOutgoingLetter() string {
	id := uuid.NewString()
	e.outgoing.docs[id] = &Document{
		ID:      id,
		Kind:    models.OutgoingLetterKind,
		Title:   "Письмо в министерство",
		OwnerID: e.ownerID,
		Status:  models.DocStatusDraft,
	}
	return id
}

func (e *testEnv) addLetter() string {
	id := uuid.NewString()
	e.letters.docs[id] = &Document{
		ID:      id,
		Kind:    models.LetterKind,
		Title:   "Служебная записка",
		OwnerID: e.ownerID,
		Status:  models.DocStatusDraft,
	}
	return id
}

// stepIDs идентификаторы шагов документа по порядку
func (e *testEnv) stepIDs(kind models.DocumentKind, documentID string) []string {
	list, _ := e.steps.List(kind, documentID)
	result := make([]string, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ID)
	}
	return result
}
