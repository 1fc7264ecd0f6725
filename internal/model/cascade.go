package model

import "github.com/shopspring/decimal"

// CascadeSymbol символ каскадной игры: 0..6 обычные, 7 scatter, -1 пустая ячейка
type CascadeSymbol int

const (
	CascadeEmpty   CascadeSymbol = -1
	CascadeScatter CascadeSymbol = 7
)

// CascadeBoard игровое поле [строка][колонка], строка 0 сверху
type CascadeBoard [][]CascadeSymbol

// NewCascadeBoard поле rows x cols, заполненное пустыми ячейками
func NewCascadeBoard(rows, cols int) CascadeBoard {
	b := make(CascadeBoard, rows)
	for r := range b {
		b[r] = make([]CascadeSymbol, cols)
		for c := range b[r] {
			b[r][c] = CascadeEmpty
		}
	}
	return b
}

func (b CascadeBoard) Rows() int { return len(b) }

func (b CascadeBoard) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Clone глубокая копия
func (b CascadeBoard) Clone() CascadeBoard {
	out := make(CascadeBoard, len(b))
	for r := range b {
		out[r] = append([]CascadeSymbol(nil), b[r]...)
	}
	return out
}

// Count количество символа на поле
func (b CascadeBoard) Count(sym CascadeSymbol) int {
	n := 0
	for _, row := range b {
		for _, s := range row {
			if s == sym {
				n++
			}
		}
	}
	return n
}

// Position ячейка каскадного поля
type Position struct {
	Row int
	Col int
}

// Cluster связная группа одинаковых символов
type Cluster struct {
	Symbol CascadeSymbol
	Cells  []Position
	Size   int
	// PayMultiplier значение из таблицы выплат для размера кластера
	PayMultiplier decimal.Decimal
	// Multiplier средний множитель ячеек кластера
	Multiplier int
	Payout     int64
}

// NewSymbol символ, упавший в ячейку при досыпке
type NewSymbol struct {
	Position
	Symbol CascadeSymbol
}

// CascadeStep один шаг каскада
type CascadeStep struct {
	Index      int
	Clusters   []Cluster
	NewSymbols []NewSymbol
	Payout     int64
}

// MultiplierState множители и счётчики попаданий ячеек
type MultiplierState struct {
	Mult [][]int
	Hits [][]int
}

// NewMultiplierState множители x1, попаданий нет
func NewMultiplierState(rows, cols int) MultiplierState {
	st := MultiplierState{
		Mult: make([][]int, rows),
		Hits: make([][]int, rows),
	}
	for r := 0; r < rows; r++ {
		st.Mult[r] = make([]int, cols)
		st.Hits[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			st.Mult[r][c] = 1
		}
	}
	return st
}

// Fits true, если размеры совпадают с полем rows x cols
func (m MultiplierState) Fits(rows, cols int) bool {
	if len(m.Mult) != rows || len(m.Hits) != rows {
		return false
	}
	for r := 0; r < rows; r++ {
		if len(m.Mult[r]) != cols || len(m.Hits[r]) != cols {
			return false
		}
	}
	return true
}

func (m MultiplierState) Clone() MultiplierState {
	out := MultiplierState{
		Mult: make([][]int, len(m.Mult)),
		Hits: make([][]int, len(m.Hits)),
	}
	for r := range m.Mult {
		out.Mult[r] = append([]int(nil), m.Mult[r]...)
	}
	for r := range m.Hits {
		out.Hits[r] = append([]int(nil), m.Hits[r]...)
	}
	return out
}

// CascadeOutcome итог раунда каскадной игры
type CascadeOutcome struct {
	Mode  Mode
	Bet   int64
	Debit int64

	InitialBoard CascadeBoard
	FinalBoard   CascadeBoard
	Steps        []CascadeStep

	// ScatterCount scatter на финальном поле, включая досыпанные
	ScatterCount        int
	InitialScatterCount int

	AwardedFreeSpins   int
	FreeSpinsRemaining int
	IsBonusActive      bool
	// FreeSpinBet ставка оставшихся фриспинов, 0 без фриспинов
	FreeSpinBet int64

	Multipliers MultiplierState

	Capped      bool
	TotalPayout int64
	NewBalance  int64
}
