package sim

// Deal is one portfolio company in a trial. Deals are built once per trial
// and not modified afterwards.
type Deal struct {
	Index        int     `json:"index"`
	InitialCheck float64 `json:"initial_check"`
	InvestYear   int     `json:"invest_year"`
	Multiple     float64 `json:"multiple"`
	ExitYear     int     `json:"exit_year"`
	FollowOn     float64 `json:"follow_on"`
	FollowOnYear int     `json:"follow_on_year"`
	HasFollowOn  bool    `json:"has_follow_on"`
}

// Invested is the total capital the fund put into the company.
func (d Deal) Invested() float64 {
	return d.InitialCheck + d.FollowOn
}

// Proceeds is the exit value returned to the fund.
func (d Deal) Proceeds() float64 {
	return d.Invested() * d.Multiple
}

// InvestYear spreads deals evenly across the investment period:
// deal i invests in year i*investPeriod/numDeals.
func InvestYear(i, numDeals, investPeriod int) int {
	return i * investPeriod / numDeals
}
