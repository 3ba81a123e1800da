package dispositionhandler

import (
	"office-admin-backend/models"
	dispositionapimodels "office-admin-backend/models/api/disposition"
	dbmodels "office-admin-backend/models/db"
)

// Arena узлы дерева диспозиций одного письма по id.
// Связи только через ParentDispositionID, обходы итеративные и устойчивы к циклам
type Arena struct {
	nodes    map[string]dbmodels.Disposition
	children map[string][]string
	roots    []string
}

func NewArena(list []dbmodels.Disposition) Arena {
	a := Arena{
		nodes:    make(map[string]dbmodels.Disposition, len(list)),
		children: map[string][]string{},
	}
	for _, rec := range list {
		a.nodes[rec.ID] = rec
	}
	for _, rec := range list {
		parentID := rec.GetParentID()
		if _, ok := a.nodes[parentID]; parentID == "" || !ok {
			a.roots = append(a.roots, rec.ID)
			continue
		}
		a.children[parentID] = append(a.children[parentID], rec.ID)
	}
	return a
}

func (a Arena) Get(id string) (dbmodels.Disposition, bool) {
	rec, ok := a.nodes[id]
	return rec, ok
}

func (a Arena) Len() int {
	return len(a.nodes)
}

// Ancestors родители узла от ближайшего к корню
func (a Arena) Ancestors(id string) []dbmodels.Disposition {
	result := []dbmodels.Disposition{}
	visited := map[string]bool{id: true}
	node, ok := a.nodes[id]
	for ok {
		parentID := node.GetParentID()
		if parentID == "" || visited[parentID] {
			break
		}
		visited[parentID] = true
		node, ok = a.nodes[parentID]
		if ok {
			result = append(result, node)
		}
	}
	return result
}

// Descendants все потомки узла в порядке обхода в ширину
func (a Arena) Descendants(id string) []dbmodels.Disposition {
	result := []dbmodels.Disposition{}
	visited := map[string]bool{id: true}
	queue := append([]string{}, a.children[id]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, a.nodes[current])
		queue = append(queue, a.children[current]...)
	}
	return result
}

// Depth глубина узла, у корневой диспозиции 1
func (a Arena) Depth(id string) int {
	if _, ok := a.nodes[id]; !ok {
		return 0
	}
	return len(a.Ancestors(id)) + 1
}

// Involves пользователь отправитель или получатель хотя бы одного узла дерева
func (a Arena) Involves(userID string) bool {
	for _, rec := range a.nodes {
		if involves(rec, userID) {
			return true
		}
	}
	return false
}

func (a Arena) Tree() []dispositionapimodels.TreeNode {
	visited := map[string]bool{}
	var build func(ids []string) []dispositionapimodels.TreeNode
	build = func(ids []string) []dispositionapimodels.TreeNode {
		result := make([]dispositionapimodels.TreeNode, 0, len(ids))
		for _, id := range ids {
			if visited[id] {
				continue
			}
			visited[id] = true
			result = append(result, dispositionapimodels.TreeNode{
				DispositionView: dispositionapimodels.DispositionConvert(a.nodes[id]),
				Children:        build(a.children[id]),
			})
		}
		return result
	}
	return build(a.roots)
}

// LetterStatus статус входящего письма по всем узлам дерева:
// нет диспозиций - new, все исполнены - completed, ни одна не начата - disposed, иначе in_progress
func LetterStatus(list []dbmodels.Disposition) models.DocumentStatus {
	if len(list) == 0 {
		return models.DocStatusNew
	}
	completed, pending := 0, 0
	for _, rec := range list {
		switch rec.Status {
		case models.DispositionCompleted:
			completed++
		case models.DispositionPending:
			pending++
		}
	}
	switch {
	case completed == len(list):
		return models.DocStatusCompleted
	case pending == len(list):
		return models.DocStatusDisposed
	}
	return models.DocStatusInProgress
}

func involves(rec dbmodels.Disposition, userID string) bool {
	return rec.FromUserID == userID || rec.ToUserID == userID
}
