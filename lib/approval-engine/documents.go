package approvalengine

import (
	"fmt"
	letterstore "office-admin-backend/lib/letter/store"
	outgoingletterstore "office-admin-backend/lib/outgoing-letter/store"
	"office-admin-backend/models"
)

// Document заголовок документа, к которому привязана цепочка согласования
type Document struct {
	ID      string
	Kind    models.DocumentKind
	Title   string
	OwnerID string
	Status  models.DocumentStatus
}

// DocumentSource доступ к документам одного вида
type DocumentSource interface {
	Labels() models.AggregateLabels
	// Lock читает документ с блокировкой до конца транзакции, nil если не найден
	Lock(id string) (*Document, error)
	SetStatus(id string, status models.DocumentStatus) error
	Delete(id string) error
	ActionURL(id string) string
}

type letterSource struct {
	store letterstore.Provider
}

func NewLetterSource(store letterstore.Provider) DocumentSource {
	return letterSource{store: store}
}

func (l letterSource) Labels() models.AggregateLabels {
	return models.LetterLabels
}

func (l letterSource) Lock(id string) (*Document, error) {
	rec, err := l.store.GetForUpdate(id)
	if err != nil || rec == nil {
		return nil, err
	}
	return &Document{
		ID:      rec.ID,
		Kind:    models.LetterKind,
		Title:   rec.Subject,
		OwnerID: rec.CreatorID,
		Status:  rec.Status,
	}, nil
}

func (l letterSource) SetStatus(id string, status models.DocumentStatus) error {
	return l.store.Update(id, map[string]interface{}{"status": status})
}

func (l letterSource) Delete(id string) error {
	return l.store.Delete(id)
}

func (l letterSource) ActionURL(id string) string {
	return fmt.Sprintf("/letters/%s", id)
}

type outgoingLetterSource struct {
	store outgoingletterstore.Provider
}

func NewOutgoingLetterSource(store outgoingletterstore.Provider) DocumentSource {
	return outgoingLetterSource{store: store}
}

func (l outgoingLetterSource) Labels() models.AggregateLabels {
	return models.OutgoingLetterLabels
}

func (l outgoingLetterSource) Lock(id string) (*Document, error) {
	rec, err := l.store.GetForUpdate(id)
	if err != nil || rec == nil {
		return nil, err
	}
	return &Document{
		ID:      rec.ID,
		Kind:    models.OutgoingLetterKind,
		Title:   rec.Subject,
		OwnerID: rec.CreatorID,
		Status:  rec.Status,
	}, nil
}

func (l outgoingLetterSource) SetStatus(id string, status models.DocumentStatus) error {
	return l.store.Update(id, map[string]interface{}{"status": status})
}

func (l outgoingLetterSource) Delete(id string) error {
	return l.store.Delete(id)
}

func (l outgoingLetterSource) ActionURL(id string) string {
	return fmt.Sprintf("/outgoing_letters/%s", id)
}
