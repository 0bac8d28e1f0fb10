package rules

// EntityView is the read-only picture of one creature in a Snapshot.
type EntityView struct {
	Kind     Kind    `json:"kind"`
	Head     Point   `json:"head"`
	Heading  float64 `json:"heading"`
	Radius   float64 `json:"radius"`
	LengthPx float64 `json:"lengthPx"`
	Body     []Point `json:"body"`
	Alive    bool    `json:"alive"`
	Boosting bool    `json:"boosting"`
	HueShift float64 `json:"hueShift,omitempty"`
}

// Camera is the view hint for a renderer: where to look and how far to zoom
// out as the player grows.
type Camera struct {
	Focus Point   `json:"focus"`
	Zoom  float64 `json:"zoom"`
}

// Snapshot is a deep copy of the arena after a tick. It shares no memory with
// the simulation, so it can be handed to other goroutines.
type Snapshot struct {
	Turn    int64        `json:"turn"`
	State   State        `json:"state"`
	Score   int64        `json:"score"`
	Message string       `json:"message,omitempty"`
	World   World        `json:"world"`
	Player  EntityView   `json:"player"`
	Rivals  []EntityView `json:"rivals"`
	Food    []Pellet     `json:"food"`
	Camera  Camera       `json:"camera"`
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() *Snapshot {
	snap := &Snapshot{
		Turn:    s.Turn,
		State:   s.State,
		Score:   s.Score,
		Message: s.Message,
		World:   s.world,
		Player:  s.Player.view(s.State == StateAlive),
		Rivals:  make([]EntityView, len(s.Rivals)),
		Food:    append([]Pellet(nil), s.Food.Items...),
		Camera:  s.Camera(),
	}
	for i, r := range s.Rivals {
		snap.Rivals[i] = r.view(true)
	}
	return snap
}

// Camera centers on the player head and zooms out linearly with its length.
func (s *Simulation) Camera() Camera {
	c := &s.cfg.Camera
	zoom := 1 - (s.Player.LengthPx-c.ReferenceLength)/c.Scale
	return Camera{
		Focus: s.Player.Head,
		Zoom:  clamp(zoom, c.MinZoom, c.MaxZoom),
	}
}

func (e *Entity) view(alive bool) EntityView {
	return EntityView{
		Kind:     e.Kind,
		Head:     e.Head,
		Heading:  e.Heading,
		Radius:   e.Radius,
		LengthPx: e.LengthPx,
		Body:     append([]Point(nil), e.Body...),
		Alive:    alive,
		Boosting: e.Boosting,
		HueShift: e.HueShift,
	}
}
