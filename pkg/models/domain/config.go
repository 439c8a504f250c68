package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeTraining  ProfileType = "training"
	ProfileTypeInference ProfileType = "inference"
	ProfileTypeAny       ProfileType = "any"
)

// ConfigProfile is a named set of default flag values.
type ConfigProfile struct {
	Name   string
	Type   ProfileType
	Values map[string]string // flag name -> value
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}

// AppliesTo reports whether the profile may fill flags of the given command type.
func (c ConfigProfile) AppliesTo(t ProfileType) bool {
	return c.Type == ProfileTypeAny || c.Type == "" || c.Type == t
}
