// pkg/gridmap/pathfinding.go
package gridmap

import (
	"container/heap"
	"grid-tower-defense/pkg/utils"
)

// FindPath находит кратчайший путь от start до goal (A*, 4-связность, шаг = 1,
// эвристика - манхэттенское расстояние) и возвращает центры клеток от start к goal.
// ok == false, если пути нет. Результат для пары spawn->base кэшируется.
func (g *Grid) FindPath(start, goal Coord) ([]utils.Vec2, bool) {
	canonical := start == g.Spawn && goal == g.Base
	if canonical && g.cacheValid {
		return append([]utils.Vec2(nil), g.cachedPath...), true
	}

	cells := g.search(start, goal)
	if cells == nil {
		return nil, false
	}
	path := make([]utils.Vec2, len(cells))
	for i, c := range cells {
		path[i] = g.CellCenter(c)
	}
	if canonical {
		g.cachedPath = path
		g.cacheValid = true
		return append([]utils.Vec2(nil), path...), true
	}
	return path, true
}

// Path возвращает путь spawn->base или nil, если база недостижима.
func (g *Grid) Path() []utils.Vec2 {
	path, ok := g.FindPath(g.Spawn, g.Base)
	if !ok {
		return nil
	}
	return path
}

// search - собственно A*. Клетки start и goal сами должны быть проходимы.
func (g *Grid) search(start, goal Coord) []Coord {
	if !g.IsValid(start) || !g.IsValid(goal) {
		return nil
	}
	if cell, _ := g.Cell(start); !cell.Traversable() {
		return nil
	}
	if cell, _ := g.Cell(goal); !cell.Traversable() {
		return nil
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &Node{Coord: start, G: 0, F: start.Manhattan(goal), Seq: seq})
	costSoFar := map[Coord]int{start: 0}
	closed := make(map[Coord]bool)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if closed[current.Coord] {
			continue
		}
		if current.Coord == goal {
			return reconstructPath(current)
		}
		closed[current.Coord] = true

		for _, neighbor := range g.Neighbors(current.Coord) {
			if closed[neighbor] {
				continue
			}
			newCost := current.G + 1
			if old, exists := costSoFar[neighbor]; !exists || newCost < old {
				costSoFar[neighbor] = newCost
				seq++
				heap.Push(pq, &Node{
					Coord:  neighbor,
					G:      newCost,
					F:      newCost + neighbor.Manhattan(goal),
					Seq:    seq,
					Parent: current,
				})
			}
		}
	}
	return nil // Нет пути
}

// PriorityQueue для A*
type PriorityQueue []*Node

type Node struct {
	Coord  Coord
	G      int
	F      int
	Seq    int // порядок вставки, последний критерий сравнения
	Parent *Node
}

func (pq PriorityQueue) Len() int { return len(pq) }

// При равных F берём меньший G, затем более раннюю вставку - порядок детерминирован.
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	if pq[i].G != pq[j].G {
		return pq[i].G < pq[j].G
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *Node) []Coord {
	path := []Coord{}
	for node != nil {
		path = append(path, node.Coord)
		node = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
