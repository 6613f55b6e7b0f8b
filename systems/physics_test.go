package systems

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

func TestGravityOvershootsCapByOneStep(t *testing.T) {
	f := newFixture(t)
	_, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	b := f.body(col, tags.Of(tags.Tiles), func(b *components.Body) {
		b.Gravity = 0.5
		b.MaxVelocity = geom.V(10, 15)
	})

	for n := 1; n <= 40; n++ {
		f.physics.Update()
		want := min(0.5*float64(n), 15.5)
		if b.Velocity.Y != want {
			t.Fatalf("tick %d: Velocity.Y = %v, want %v", n, b.Velocity.Y, want)
		}
	}
}

func TestRollbackOnHorizontalHit(t *testing.T) {
	f := newFixture(t)
	subject, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	f.box(12, 0, 10, 10, tags.Of(tags.Tiles))
	b := f.body(col, tags.Of(tags.Tiles), nil)
	b.Velocity.X = 5

	before := f.pos(subject)
	res := f.physics.Step(col)

	if !res.HitX || res.HitY {
		t.Errorf("Resolution = %+v, want HitX only", res)
	}
	if got := f.pos(subject); got != before {
		t.Errorf("position = %v, want unchanged %v", got, before)
	}
	if b.Velocity.X != 0 {
		t.Errorf("Velocity.X = %v, want 0", b.Velocity.X)
	}
}

func TestNonSolidTagsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	subject, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	f.box(12, 0, 10, 10, tags.Of(tags.Bushes))
	b := f.body(col, tags.Of(tags.Tiles), func(b *components.Body) { b.Weight = 0 })
	b.Velocity.X = 5

	f.physics.Step(col)
	if got := f.pos(subject).X; got != 5 {
		t.Errorf("X = %v, want 5", got)
	}
	if b.LastPosition.X != 5 {
		t.Errorf("LastPosition.X = %v, want 5", b.LastPosition.X)
	}
}

func TestWeightDecayFloorsAtZero(t *testing.T) {
	tests := []struct {
		name  string
		start float64
	}{
		{"moving right", 3},
		{"moving left", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
			b := f.body(col, tags.Of(tags.Tiles), func(b *components.Body) {
				b.Weight = 0.5
				b.Gravity = 0
			})
			b.Velocity = geom.V(tt.start, 1)

			for i := 0; i < 6; i++ {
				f.physics.Update()
			}
			if b.Velocity.X != 0 {
				t.Fatalf("after 6 ticks Velocity.X = %v, want 0", b.Velocity.X)
			}
			f.physics.Update()
			if b.Velocity.X != 0 {
				t.Errorf("decay crossed zero: Velocity.X = %v", b.Velocity.X)
			}
			if b.Velocity.Y != 1 {
				t.Errorf("decay touched Velocity.Y: %v, want 1", b.Velocity.Y)
			}
		})
	}
}

func TestNegativeWeightDoesNotAccelerate(t *testing.T) {
	f := newFixture(t)
	_, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	b := f.body(col, tags.Of(tags.Tiles), func(b *components.Body) {
		b.Weight = -2
		b.Gravity = 0
	})
	b.Velocity = geom.V(3, 0)
	f.physics.Update()
	if b.Velocity != geom.V(3, 0) {
		t.Errorf("Velocity = %v, want (3, 0) unchanged", b.Velocity)
	}
}

func TestBodyComesToRestOnFloor(t *testing.T) {
	f := newFixture(t)
	const height = 20
	subject, col := f.box(100, 100, 10, height, tags.Of(tags.Player))
	f.box(0, 150, 400, 10, tags.Of(tags.Tiles))
	b := f.body(col, tags.Of(tags.Tiles), func(b *components.Body) { b.Gravity = 0.5 })

	for i := 0; i < 300; i++ {
		f.physics.Update()
	}
	for i := 0; i < 20; i++ {
		f.physics.Update()
		if y := f.pos(subject).Y; y != 150-height {
			t.Fatalf("tick %d: Y = %v, want %v", i, y, 150-height)
		}
		if b.Velocity.Y != 0 {
			t.Fatalf("tick %d: Velocity.Y = %v, want 0", i, b.Velocity.Y)
		}
	}
}

func TestUpdateRunsInAttachOrder(t *testing.T) {
	// a moves right into b's spot; b moves away. Whether a is blocked
	// depends on which of them moved first this tick.
	run := func(aFirst bool) bool {
		f := newFixture(t)
		_, a := f.box(0, 0, 10, 10, tags.Of(tags.Player))
		_, b := f.box(12, 0, 10, 10, tags.Of(tags.Player))
		solid := tags.Of(tags.Player)
		if aFirst {
			f.body(a, solid, nil)
			f.body(b, solid, nil)
		} else {
			f.body(b, solid, nil)
			f.body(a, solid, nil)
		}
		f.physics.Body(a).Velocity.X = 5
		f.physics.Body(b).Velocity.X = 5

		var hit bool
		f.physics.OnResolve = func(e ecs.Entity, r Resolution) {
			if e == a && r.HitX {
				hit = true
			}
		}
		f.physics.Update()
		return hit
	}

	if !run(true) {
		t.Error("a attached first should be blocked by b")
	}
	if run(false) {
		t.Error("b attached first should have moved out of a's way")
	}
}

func TestAttachErrors(t *testing.T) {
	f := newFixture(t)
	subject := f.subject(0, 0, 10, 10)

	if err := f.physics.Attach(subject, components.NewBody(0)); !errors.Is(err, ErrNoCollider) {
		t.Errorf("attach to subject: got %v, want ErrNoCollider", err)
	}

	unregistered := f.colliders.NewEntity(&components.Collider{Subject: subject})
	if err := f.physics.Attach(unregistered, components.NewBody(0)); !errors.Is(err, ErrNoCollider) {
		t.Errorf("attach to unregistered collider: got %v, want ErrNoCollider", err)
	}

	deadSubject, deadCol := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	f.kill(deadSubject)
	if err := f.physics.Attach(deadCol, components.NewBody(0)); !errors.Is(err, ErrNoSubject) {
		t.Errorf("attach with dead subject: got %v, want ErrNoSubject", err)
	}

	_, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	f.body(col, 0, nil)
	if err := f.physics.Attach(col, components.NewBody(0)); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("double attach: got %v, want ErrAlreadyAttached", err)
	}
}

func TestAttachSeedsLastPosition(t *testing.T) {
	f := newFixture(t)
	_, col := f.box(42, 17, 10, 10, tags.Of(tags.Player))
	b := f.body(col, 0, nil)
	if b.LastPosition != geom.V(42, 17) {
		t.Errorf("LastPosition = %v, want (42,17)", b.LastPosition)
	}
}

func TestDeadAndRemovedBodies(t *testing.T) {
	f := newFixture(t)
	subject, col := f.box(0, 0, 10, 10, tags.Of(tags.Player))
	_, other := f.box(50, 0, 10, 10, tags.Of(tags.Player))
	f.body(col, 0, func(b *components.Body) { b.Gravity = 1 })
	f.body(other, 0, nil)
	b := f.physics.Body(col)

	f.kill(subject)
	f.physics.Update()
	if b.Velocity.Y != 0 || f.pos(subject).Y != 0 {
		t.Error("body with dead subject should not move")
	}

	f.world.RemoveEntity(other)
	f.physics.Update()
	if f.physics.Len() != 1 {
		t.Errorf("Len = %d after removal, want 1", f.physics.Len())
	}
	if f.physics.Body(other) != nil {
		t.Error("Body of removed entity should be nil")
	}
}

func TestGroundProbe(t *testing.T) {
	f := newFixture(t)
	player := f.subject(100, 130, 10, 20)
	f.box(0, 150, 400, 10, tags.Of(tags.Tiles))
	probe := f.colliderWith(components.Collider{
		Subject: player,
		Offset:  geom.V(0, 1),
		Inflate: geom.V(5, 0),
		Tags:    tags.Of(tags.GroundCheck),
	})

	if !Grounded(f.index, probe, tags.Of(tags.Tiles)) {
		t.Error("standing player should be grounded")
	}
	if Grounded(f.index, probe, tags.Of(tags.Bushes)) {
		t.Error("probe should ignore tags outside the query")
	}

	f.positions.Get(player).Y = 100
	if Grounded(f.index, probe, tags.Of(tags.Tiles)) {
		t.Error("airborne player should not be grounded")
	}
}

func TestPatrolFlipsAtBounds(t *testing.T) {
	w := ecs.NewWorld()
	patrols := ecs.NewMap3[components.Position, components.Patrol, components.Life](w)
	e := patrols.NewEntity(
		&components.Position{X: 598},
		&components.Patrol{MinX: 300, MaxX: 600, Speed: 1, Dir: 1},
		&components.Life{Alive: true},
	)
	sys := NewPatrolSystem(w)
	pos := ecs.NewMap[components.Position](w)

	want := []float64{599, 600, 599, 598}
	for i, x := range want {
		sys.Update()
		if got := pos.Get(e).X; got != x {
			t.Fatalf("step %d: X = %v, want %v", i, got, x)
		}
	}
}
