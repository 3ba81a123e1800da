package apimodels

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Code    string      `json:"code,omitempty"`    //вид ошибки бизнес-логики (OUT_OF_TURN, STAGE_MISMATCH ...)
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //для списков, общее кол-во записей, учитывая фильтр (если он есть)
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewErrorWithCode(code, message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Code:    code,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit" validate:"gte=0,lte=100"` // Записей на странице
	Page  int `json:"page" validate:"gte=0"`          // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return ValidateStruct(r)
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
