package scoreboarddomain

import (
	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
)

// compiled holds the parsed conditions of a validated spec.
type compiled struct {
	scoreToPar   map[string]gamespecdomain.ScoreToPar
	junkLogic    map[string]gamespecdomain.Expr
	availability map[string]gamespecdomain.Expr
}

func compile(s gamespecdomain.GameSpec) compiled {
	c := compiled{
		scoreToPar:   make(map[string]gamespecdomain.ScoreToPar),
		junkLogic:    make(map[string]gamespecdomain.Expr),
		availability: make(map[string]gamespecdomain.Expr),
	}
	for _, j := range s.Junk {
		if j.ScoreToPar != "" {
			if cond, err := gamespecdomain.ParseScoreToPar(j.ScoreToPar); err == nil {
				c.scoreToPar[j.Name] = cond
			}
		}
		if j.Logic != "" {
			if e, err := gamespecdomain.ParseExpr(j.Logic); err == nil {
				c.junkLogic[j.Name] = e
			}
		}
	}
	for _, m := range s.Multipliers {
		if m.Availability != "" {
			if e, err := gamespecdomain.ParseExpr(m.Availability); err == nil {
				c.availability[m.Name] = e
			}
		}
	}
	return c
}
