package pet

// Advance applies elapsedSeconds of decay. Base drift goes first; the
// happiness penalties then read the already-updated hunger, dirtiness and
// energy. Zero, negative and NaN elapsed times do nothing.
func (p *PetState) Advance(elapsedSeconds float64) {
	if !(elapsedSeconds > 0) {
		return
	}
	r := p.rules
	t := elapsedSeconds

	// Hunger and dirtiness grow, energy and happiness drain.
	p.add(AttrHunger, r.HungerPerSecond*t)
	p.add(AttrEnergy, -r.EnergyPerSecond*t)
	p.add(AttrHappiness, -r.HappinessPerSecond*t)
	p.add(AttrDirtiness, r.DirtinessPerSecond*t)

	if p.Hunger() > r.DistressLevel || p.Dirtiness() > r.DistressLevel {
		p.add(AttrHappiness, -r.DistressPenaltyPerSecond*t)
	}
	if p.Energy() < r.ExhaustionLevel {
		p.add(AttrHappiness, -r.ExhaustionPenaltyPerSecond*t)
	}
}
