package game

// logWorldState logs a snapshot of the world at a telemetry flush.
func (g *Game) logWorldState() {
	attrs := []any{
		"tick", g.tick,
		"state", g.state.String(),
		"colliders", g.colliders.Total(),
		"bodies", g.physics.Len(),
		"grounded", g.grounded,
	}
	if pos, ok := g.PlayerPosition(); ok {
		attrs = append(attrs, "player_x", pos.X, "player_y", pos.Y)
	}
	if !g.boss.subject.IsZero() && g.world.Alive(g.boss.subject) {
		boss := g.positions.Get(g.boss.subject)
		attrs = append(attrs, "boss_x", boss.X)
	}
	g.logger.Info("world", attrs...)
}
