package state

// RolePrimaryHeating is the system-ID role pre-seeded on every tracker. The
// slot may be overwritten once a concrete system is translated, but it is
// never dropped.
const RolePrimaryHeating = "primary_heating"

// defaultPrimaryHeatingID is the identifier assumed for the primary heating
// system before the Systems stage runs.
const defaultPrimaryHeatingID = "HeatingSystem1"

// SystemTracker accumulates the cross-stage mechanical-system state: which
// domains have been translated, the distribution types in play, and the
// identifiers later stages reference.
type SystemTracker struct {
	hvacTranslated bool
	dhwTranslated  bool

	heatingDistribution *string
	coolingDistribution *string

	supplementalHeatingDistributions []string
	systemIDs                        map[string]string
	flueDiameters                    []float64
}

// NewSystemTracker seeds the tracker with the default primary-heating
// identifier.
func NewSystemTracker() *SystemTracker {
	return &SystemTracker{
		systemIDs: map[string]string{RolePrimaryHeating: defaultPrimaryHeatingID},
	}
}

// MarkHVACTranslated records that the HVAC domain produced output.
func (s *SystemTracker) MarkHVACTranslated() { s.hvacTranslated = true }

// HVACTranslated reports whether the HVAC domain produced output.
func (s *SystemTracker) HVACTranslated() bool { return s.hvacTranslated }

// MarkDHWTranslated records that the domestic hot water domain produced
// output.
func (s *SystemTracker) MarkDHWTranslated() { s.dhwTranslated = true }

// DHWTranslated reports whether the domestic hot water domain produced
// output.
func (s *SystemTracker) DHWTranslated() bool { return s.dhwTranslated }

// SetHeatingDistribution records the heating distribution type.
func (s *SystemTracker) SetHeatingDistribution(kind string) {
	s.heatingDistribution = &kind
}

// HeatingDistribution returns the heating distribution type when one has
// been recorded.
func (s *SystemTracker) HeatingDistribution() (string, bool) {
	if s.heatingDistribution == nil {
		return "", false
	}
	return *s.heatingDistribution, true
}

// SetCoolingDistribution records the cooling distribution type.
func (s *SystemTracker) SetCoolingDistribution(kind string) {
	s.coolingDistribution = &kind
}

// CoolingDistribution returns the cooling distribution type when one has
// been recorded.
func (s *SystemTracker) CoolingDistribution() (string, bool) {
	if s.coolingDistribution == nil {
		return "", false
	}
	return *s.coolingDistribution, true
}

// AddSupplementalHeatingDistribution appends one supplemental heating
// distribution type, preserving insertion order.
func (s *SystemTracker) AddSupplementalHeatingDistribution(kind string) {
	s.supplementalHeatingDistributions = append(s.supplementalHeatingDistributions, kind)
}

// SupplementalHeatingDistributions returns a copy of the accumulated
// supplemental heating distribution types.
func (s *SystemTracker) SupplementalHeatingDistributions() []string {
	return append([]string(nil), s.supplementalHeatingDistributions...)
}

// MergeSystemIDs folds new role-to-identifier entries into the tracker without
// clearing unrelated entries. Colliding roles are overwritten.
func (s *SystemTracker) MergeSystemIDs(ids map[string]string) {
	for role, id := range ids {
		s.systemIDs[role] = id
	}
}

// SystemID returns the identifier recorded for a role.
func (s *SystemTracker) SystemID(role string) (string, bool) {
	id, ok := s.systemIDs[role]
	return id, ok
}

// AddFlueDiameter appends one flue diameter. The list is add-only.
func (s *SystemTracker) AddFlueDiameter(diameter float64) {
	s.flueDiameters = append(s.flueDiameters, diameter)
}

// FlueDiameters returns a copy of the accumulated flue diameters.
func (s *SystemTracker) FlueDiameters() []float64 {
	return append([]float64(nil), s.flueDiameters...)
}
