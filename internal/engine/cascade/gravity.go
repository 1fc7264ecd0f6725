package cascade

import (
	"slot_engine/internal/engine/rng"
	"slot_engine/internal/engine/sampler"
	"slot_engine/internal/model"
)

// Collapse опускает символы каждой колонки вниз с сохранением порядка, пустые ячейки остаются сверху
func Collapse(board model.CascadeBoard) {
	rows, cols := board.Rows(), board.Cols()
	for c := 0; c < cols; c++ {
		write := rows - 1
		for r := rows - 1; r >= 0; r-- {
			if board[r][c] == model.CascadeEmpty {
				continue
			}
			board[write][c] = board[r][c]
			write--
		}
		for ; write >= 0; write-- {
			board[write][c] = model.CascadeEmpty
		}
	}
}

// Refill заполняет пустые ячейки из таблицы. Новые символы по колонкам, в колонке сверху вниз
func Refill(board model.CascadeBoard, weights sampler.Table[model.CascadeSymbol], src rng.Source) []model.NewSymbol {
	var added []model.NewSymbol
	for c := 0; c < board.Cols(); c++ {
		for r := 0; r < board.Rows(); r++ {
			if board[r][c] != model.CascadeEmpty {
				continue
			}
			sym := weights.Draw(src)
			board[r][c] = sym
			added = append(added, model.NewSymbol{Position: model.Position{Row: r, Col: c}, Symbol: sym})
		}
	}
	return added
}
