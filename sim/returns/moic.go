package returns

// MOIC is distributions divided by invested capital; zero when nothing was
// invested.
func MOIC(distributed, invested float64) float64 {
	if invested <= 0 {
		return 0
	}
	m := distributed / invested
	if m < 0 {
		return 0
	}
	return m
}
