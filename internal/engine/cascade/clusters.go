package cascade

import (
	"slices"
	"slot_engine/internal/model"
)

var dirs = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// FindClusters ищет связные по 4 соседям группы одинаковых символов размером от minSize.
// Пустые ячейки и scatter в кластеры не входят. Кластеры в порядке обхода сверху вниз слева направо,
// ячейки каждого кластера отсортированы так же
func FindClusters(board model.CascadeBoard, minSize int) []model.Cluster {
	rows, cols := board.Rows(), board.Cols()
	visited := make([][]bool, rows)
	for r := range visited {
		visited[r] = make([]bool, cols)
	}

	var clusters []model.Cluster
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sym := board[r][c]
			if visited[r][c] || sym == model.CascadeEmpty || sym == model.CascadeScatter {
				continue
			}

			visited[r][c] = true
			queue := []model.Position{{Row: r, Col: c}}
			var cells []model.Position
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				cells = append(cells, cur)
				for _, d := range dirs {
					nr, nc := cur.Row+d[0], cur.Col+d[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if visited[nr][nc] || board[nr][nc] != sym {
						continue
					}
					visited[nr][nc] = true
					queue = append(queue, model.Position{Row: nr, Col: nc})
				}
			}

			if len(cells) < minSize {
				continue
			}
			slices.SortFunc(cells, func(a, b model.Position) int {
				if a.Row != b.Row {
					return a.Row - b.Row
				}
				return a.Col - b.Col
			})
			clusters = append(clusters, model.Cluster{Symbol: sym, Cells: cells, Size: len(cells)})
		}
	}
	return clusters
}
