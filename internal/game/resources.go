package game

// Resources is the fixed set of stockpile counters. The same struct doubles
// as a cost or production table, where a zero field means "not specified".
type Resources struct {
	Food  float64 `json:"food"`
	Wood  float64 `json:"wood"`
	Stone float64 `json:"stone"`
	Gold  float64 `json:"gold"`
}

// Add unconditionally increments every counter by the given delta.
func (r *Resources) Add(delta Resources) {
	r.Food += delta.Food
	r.Wood += delta.Wood
	r.Stone += delta.Stone
	r.Gold += delta.Gold
}

// CanAfford reports whether every counter covers the corresponding cost.
func (r Resources) CanAfford(cost Resources) bool {
	return r.Food >= cost.Food &&
		r.Wood >= cost.Wood &&
		r.Stone >= cost.Stone &&
		r.Gold >= cost.Gold
}

// Subtract deducts cost if affordable. Returns false without mutating
// anything when any counter falls short.
func (r *Resources) Subtract(cost Resources) bool {
	if !r.CanAfford(cost) {
		return false
	}
	r.Food -= cost.Food
	r.Wood -= cost.Wood
	r.Stone -= cost.Stone
	r.Gold -= cost.Gold
	return true
}

// Shortfall names the first counter that cannot cover the cost, or ""
// when everything is affordable.
func (r Resources) Shortfall(cost Resources) string {
	switch {
	case r.Food < cost.Food:
		return "food"
	case r.Wood < cost.Wood:
		return "wood"
	case r.Stone < cost.Stone:
		return "stone"
	case r.Gold < cost.Gold:
		return "gold"
	}
	return ""
}

// Scale returns a copy with every counter multiplied by f.
func (r Resources) Scale(f float64) Resources {
	return Resources{
		Food:  r.Food * f,
		Wood:  r.Wood * f,
		Stone: r.Stone * f,
		Gold:  r.Gold * f,
	}
}
