package models

type DispositionStatus string

const (
	DispositionPending    DispositionStatus = "pending"
	DispositionRead       DispositionStatus = "read"
	DispositionInProgress DispositionStatus = "in_progress"
	DispositionCompleted  DispositionStatus = "completed"
)

var dispositionRank = map[DispositionStatus]int{
	DispositionPending:    0,
	DispositionRead:       1,
	DispositionInProgress: 2,
	DispositionCompleted:  3,
}

var dispositionHumanName = map[DispositionStatus]string{
	DispositionPending:    "Ожидает",
	DispositionRead:       "Прочитано",
	DispositionInProgress: "В работе",
	DispositionCompleted:  "Исполнено",
}

func (s DispositionStatus) ToHuman() string {
	if human, exist := dispositionHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsAllowChange статус диспозиции только растет: pending -> read -> in_progress -> completed
func (s DispositionStatus) IsAllowChange(to DispositionStatus) bool {
	from, ok := dispositionRank[s]
	if !ok {
		return false
	}
	target, ok := dispositionRank[to]
	if !ok {
		return false
	}
	return target > from
}

func (s DispositionStatus) IsCompleted() bool {
	return s == DispositionCompleted
}
