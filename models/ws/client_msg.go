package wsmodels

const (
	MarkReadCode    = "mark_read"
	MarkAllReadCode = "mark_all_read"
)

// ClientMessage команда от фронта по открытой сессии
type ClientMessage struct {
	Code string   `json:"code"`
	IDs  []string `json:"ids,omitempty"` // ID уведомлений для mark_read
}
