package wsmodels

const UnreadCountCode = "unread_count"

type ServerMessage struct {
	ToUserID    string `json:"-"`
	ID          string `json:"id,omitempty"`           // ID уведомления
	Time        string `json:"time"`                   // время события
	Code        string `json:"code"`                   // код события
	Title       string `json:"title,omitempty"`        // заголовок
	Msg         string `json:"msg,omitempty"`          // текст события
	ActionURL   string `json:"action_url,omitempty"`   // ссылка на документ
	UnreadCount *int64 `json:"unread_count,omitempty"` // количество непрочитанных, для кода unread_count
}
