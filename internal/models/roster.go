package models

// Roster is the ordered list of cats shown to one operator. It is not safe
// for concurrent use; callers serialize access per session.
type Roster struct {
	cats []Cat
}

func NewRoster(cats []Cat) *Roster {
	r := &Roster{}
	r.Reset(cats)
	return r
}

func (r *Roster) Reset(cats []Cat) {
	r.cats = append([]Cat(nil), cats...)
}

func (r *Roster) Cats() []Cat {
	return append([]Cat(nil), r.cats...)
}

func (r *Roster) Len() int {
	return len(r.cats)
}

func (r *Roster) Append(cat Cat) {
	r.cats = append(r.cats, cat)
}

// Replace swaps the cat with the same id for the given one and reports
// whether a row was found.
func (r *Roster) Replace(cat Cat) bool {
	for i := range r.cats {
		if r.cats[i].Id == cat.Id {
			r.cats[i] = cat
			return true
		}
	}
	return false
}

func (r *Roster) Remove(id int64) bool {
	for i := range r.cats {
		if r.cats[i].Id == id {
			r.cats = append(r.cats[:i], r.cats[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Roster) Find(id int64) (Cat, bool) {
	for _, c := range r.cats {
		if c.Id == id {
			return c, true
		}
	}
	return Cat{}, false
}

// Missions returns the cats that carry a mission, in roster order.
func (r *Roster) Missions() []Cat {
	var withMission []Cat
	for _, c := range r.cats {
		if c.HasMission() {
			withMission = append(withMission, c)
		}
	}
	return withMission
}
