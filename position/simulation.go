package position

// Simulation is the handle passed to a simulation block. The block mutates
// the Position freely and then decides to Commit or Rollback. The first
// decision wins; later calls are no-ops. A block that decides nothing is
// rolled back when it returns, including when it panics.
type Simulation struct {
	position *Position
	saved    transform
	decided  bool
}

// Position returns the simulated Position.
func (s *Simulation) Position() *Position {
	return s.position
}

// Commit keeps the mutations made so far.
func (s *Simulation) Commit() {
	s.decided = true
}

// Rollback restores the local transform captured when the block started.
func (s *Simulation) Rollback() {
	if s.decided {
		return
	}
	s.decided = true
	s.position.local = s.saved
	s.position.invalidate()
}

// Decided reports whether Commit or Rollback has been called.
func (s *Simulation) Decided() bool {
	return s.decided
}

// Simulation runs block in a simulation of p.
func (p *Position) Simulation(block func(sim *Simulation)) *Position {
	Simulate(p, func(sim *Simulation) struct{} {
		block(sim)
		return struct{}{}
	})
	return p
}

// Simulate runs block in a simulation of p and returns its result. Use it to
// ask "what if" questions, such as where a child would land after its parent
// moved, without keeping the change.
func Simulate[R any](p *Position, block func(sim *Simulation) R) R {
	sim := &Simulation{position: p, saved: p.local}
	defer func() {
		if !sim.decided {
			sim.Rollback()
		}
	}()
	return block(sim)
}
