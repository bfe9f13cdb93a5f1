package services

import (
	"fmt"
)

// GradeScale is the default scale applied to new evaluations.
type GradeScale string

const (
	Scale20     GradeScale = "20"
	Scale100    GradeScale = "100"
	ScaleLetter GradeScale = "letter"
)

type Profile struct {
	Name        string
	Email       string
	Role        string
	Phone       string
	Institution string
}

// Weights are the default grading coefficients, in percent. They must sum
// to exactly 100 to be saved.
type Weights struct {
	Devoirs int
	Examens int
}

// WeightError rejects a weight configuration, citing the offending total.
type WeightError struct {
	Total int
}

func (e *WeightError) Error() string {
	return fmt.Sprintf("la somme des coefficients doit égaler 100%% (actuellement %d%%)", e.Total)
}

func (w Weights) Validate() error {
	if total := w.Devoirs + w.Examens; total != 100 {
		return &WeightError{Total: total}
	}
	return nil
}

type Settings struct {
	Profile       Profile
	Scale         GradeScale
	Weights       Weights
	Notifications bool
	AutoSync      bool
	Language      string
}

func DefaultSettings() Settings {
	return Settings{
		Profile: Profile{
			Name:        "Marie Dubois",
			Email:       "marie.dubois@college-exemple.fr",
			Role:        "Professeure Principal",
			Phone:       "+33 6 12 34 56 78",
			Institution: "Collège Jean Moulin",
		},
		Scale:         Scale20,
		Weights:       Weights{Devoirs: 40, Examens: 60},
		Notifications: true,
		AutoSync:      true,
		Language:      "fr",
	}
}

// SaveWeights is the sole gate on the weight configuration: the sum rule is
// checked at save time and an invalid draft leaves the settings untouched.
func (s *Settings) SaveWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.Weights = w
	return nil
}

func (s *Settings) SaveProfile(p Profile) {
	s.Profile = p
}

func (s *Settings) SetScale(scale GradeScale) {
	switch scale {
	case Scale20, Scale100, ScaleLetter:
		s.Scale = scale
	}
}
