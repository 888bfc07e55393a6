package notation

// Stave geometry the browser renderer draws with, in pixels.
const (
	MaxWidth    = 800
	StaveWidth  = 120
	StaveHeight = 100
	BarSpacing  = 15
	ClefSpace   = 60

	denseNotesPerBar = 4
	singleRowNotes   = 32
)

// BarsPerRow picks how many bars share one stave row.
func BarsPerRow(bars, totalNotes int) int {
	if bars <= 0 {
		return 1
	}
	switch {
	case bars < 4 && totalNotes < singleRowNotes:
		return bars
	case bars == 4:
		return 2
	case bars == 6:
		return 3
	case bars == 8:
		if float64(totalNotes)/float64(bars) > denseNotesPerBar {
			return 2
		}
		return 3
	}
	return (MaxWidth - ClefSpace) / (StaveWidth + BarSpacing)
}

// Rows splits bar indices 0..bars-1 into rows of at most perRow bars.
func Rows(bars, perRow int) [][]int {
	if perRow < 1 {
		perRow = 1
	}
	rows := [][]int{}
	for start := 0; start < bars; start += perRow {
		end := min(start+perRow, bars)
		row := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, i)
		}
		rows = append(rows, row)
	}
	return rows
}
