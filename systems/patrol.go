package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/components"
)

// PatrolSystem walks subjects back and forth between two X bounds.
type PatrolSystem struct {
	filter *ecs.Filter2[components.Position, components.Patrol]
	lives  *ecs.Map[components.Life]
}

// NewPatrolSystem creates a patrol system.
func NewPatrolSystem(w *ecs.World) *PatrolSystem {
	return &PatrolSystem{
		filter: ecs.NewFilter2[components.Position, components.Patrol](w),
		lives:  ecs.NewMap[components.Life](w),
	}
}

// Update moves every live patroller one step. Direction flips at the bounds
// before the move.
func (s *PatrolSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		if s.lives.Has(query.Entity()) && !s.lives.Get(query.Entity()).Alive {
			continue
		}
		pos, p := query.Get()
		step(pos, p)
	}
}

func step(pos *components.Position, p *components.Patrol) {
	if pos.X <= p.MinX {
		p.Dir = 1
	} else if pos.X >= p.MaxX {
		p.Dir = -1
	}
	if p.Dir == 0 {
		p.Dir = 1
	}
	pos.X += p.Speed * p.Dir
}
