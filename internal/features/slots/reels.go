package slots

// Pool собирает новый пул барабана: каждый символ повторён weight раз,
// в порядке набора символов.
func (e *Engine) Pool() []string {
	pool := make([]string, 0, e.poolSize)
	for _, s := range e.symbols {
		for i := 0; i < s.Weight; i++ {
			pool = append(pool, s.Name)
		}
	}
	return pool
}

// DrawReels заполняет каждую колонку из собственного пула, вытягивая rows
// элементов без возвращения. Колонки независимы друг от друга.
func (e *Engine) DrawReels() Reels {
	reels := make(Reels, e.cols)
	for c := 0; c < e.cols; c++ {
		pool := e.Pool()
		reel := make([]string, 0, e.rows)
		for r := 0; r < e.rows; r++ {
			i := e.rng.IntN(len(pool))
			reel = append(reel, pool[i])
			pool = append(pool[:i], pool[i+1:]...)
		}
		reels[c] = reel
	}
	return reels
}

// Transpose переводит барабаны (по колонкам) в сетку по строкам:
// grid[r][c] = reels[c][r].
func Transpose(reels Reels) Grid {
	if len(reels) == 0 {
		return Grid{}
	}
	rows := len(reels[0])
	grid := make(Grid, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]string, len(reels))
		for c := range reels {
			grid[r][c] = reels[c][r]
		}
	}
	return grid
}
