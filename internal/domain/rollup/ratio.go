package rollup

// WinRate is winners/teams, 0 when there are no teams.
func WinRate(winners, teams int) float64 {
	if teams <= 0 {
		return 0
	}
	return clamp01(float64(winners) / float64(teams))
}

// SubmissionRatio is received/limit. It is nil when either side is
// unknown or the limit is zero, and capped to [0,1].
func SubmissionRatio(received, limit *int) *float64 {
	if received == nil || limit == nil || *limit == 0 {
		return nil
	}
	r := clamp01(float64(*received) / float64(*limit))
	return &r
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func maxInt(cur, v *int) *int {
	if v == nil {
		return cur
	}
	if cur == nil || *v > *cur {
		n := *v
		return &n
	}
	return cur
}

func maxFloat(cur, v *float64) *float64 {
	if v == nil {
		return cur
	}
	if cur == nil || *v > *cur {
		n := *v
		return &n
	}
	return cur
}

// mean is total/n, 0 when n is 0.
func mean(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
